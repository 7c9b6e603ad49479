package config

import "flag"

// Flags holds command-line overrides. Only flags given on the command line
// override the config.
type Flags struct {
	Config     string
	Debug      bool
	Divisions  int
	Iterations int
	Delta      float64
	Seed       int64
	Out        string
	Format     string
	NoCompress bool

	fs *flag.FlagSet
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Divisions, "div", 0, "Grid subdivisions per axis")
	fs.IntVar(&f.Iterations, "iterations", 0, "Fault iterations")
	fs.Float64Var(&f.Delta, "delta", 0, "Elevation change per iteration")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed (0 = from clock)")
	fs.StringVar(&f.Out, "out", "", "Output file path")
	fs.StringVar(&f.Format, "format", "", "Output format: tmb or obj")
	fs.BoolVar(&f.NoCompress, "no-compress", false, "Write uncompressed TMB")
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return f.Config
}

func (f *Flags) set() map[string]bool {
	set := make(map[string]bool)
	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	}
	return set
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	set := f.set()
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if set["div"] {
		cfg.Terrain.Divisions = f.Divisions
	}
	if set["iterations"] {
		cfg.Terrain.Iterations = f.Iterations
	}
	if set["delta"] {
		cfg.Terrain.Delta = float32(f.Delta)
	}
	if set["seed"] {
		cfg.Terrain.Seed = f.Seed
	}
	if f.Out != "" {
		cfg.Output.Path = f.Out
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.NoCompress {
		cfg.Output.Compression = CompressionNone
	}
}
