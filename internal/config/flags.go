package config

import "flag"

// Flags holds CLI overrides registered on a subcommand's FlagSet.
type Flags struct {
	Config       string
	Debug        bool
	Width        int
	Height       int
	UnitScale    float64
	Image        string
	SelectedOnly bool
	AllFaces     bool
	Opaque       bool
	Workers      int
	Format       string
	LogFile      string
}

// RegisterFlags binds the common override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Grid width in pixels")
	fs.IntVar(&f.Height, "height", 0, "Grid height in pixels")
	fs.Float64Var(&f.UnitScale, "scale", 0, "UV units per grid cell")
	fs.StringVar(&f.Image, "image", "", "Target texture (grid size source)")
	fs.BoolVar(&f.SelectedOnly, "selected", false, "Only unwrap or export selected faces")
	fs.BoolVar(&f.AllFaces, "all", false, "Export every face, selected or not")
	fs.BoolVar(&f.Opaque, "opaque", false, "Fill the export background with a checkerboard")
	fs.IntVar(&f.Workers, "workers", 0, "Rasterization workers")
	fs.StringVar(&f.Format, "format", "", "Export format (png, jpg, bmp, tiff, tga)")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to file")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Grid.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Grid.Height = f.Height
	}
	if f.UnitScale > 0 {
		cfg.Grid.UnitScale = f.UnitScale
	}
	if f.Image != "" {
		cfg.Grid.Image = f.Image
	}
	if f.SelectedOnly {
		cfg.Unwrap.SelectedOnly = true
		cfg.Export.SelectedOnly = true
	}
	if f.AllFaces {
		cfg.Export.SelectedOnly = false
	}
	if f.Opaque {
		cfg.Export.Transparent = false
	}
	if f.Workers > 0 {
		cfg.Export.Workers = f.Workers
	}
	if f.Format != "" {
		cfg.Export.Format = f.Format
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
