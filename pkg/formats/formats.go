// Package formats reads and writes terrain mesh files.
//
// TMB is the native binary format and keeps every buffer the generator
// produces. OBJ is a lossy text export for viewing in other tools.
package formats
