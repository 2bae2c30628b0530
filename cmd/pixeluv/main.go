// pixeluv unwraps mesh documents onto a pixel grid and exports UV layouts.
package main

import (
	"context"
	"flag"
	"fmt"
	stdmath "math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/pixel-perfect/internal/config"
	"github.com/Faultbox/pixel-perfect/internal/logger"
	"github.com/Faultbox/pixel-perfect/internal/pipeline"
	"github.com/Faultbox/pixel-perfect/internal/texture"
	"github.com/Faultbox/pixel-perfect/pkg/math"
	"github.com/Faultbox/pixel-perfect/pkg/uv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "unwrap":
		err = cmdUnwrap(args)
	case "export":
		err = cmdExport(args)
	case "classify":
		err = cmdClassify(args)
	case "isolate":
		err = cmdIsolate(args)
	case "snap":
		err = cmdEdit(pipeline.EditSnap, args)
	case "rotate":
		err = cmdEdit(pipeline.EditRotate, args)
	case "mirror":
		err = cmdEdit(pipeline.EditMirror, args)
	case "size":
		err = cmdSize(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pixeluv - pixel-perfect UV unwrapping

Usage:
  pixeluv <command> [options]

Commands:
  unwrap   [-mode pixel|auto|normal|direction] [-dir x,y,z] <mesh.yaml>
  export   <mesh.yaml> <layout.png|jpg|bmp|tiff|tga>
  classify <mesh.yaml>                    Print the projection axis of every face
  isolate  -dir x,y,z [-angle deg] <mesh.yaml>
  snap     -at u,v <mesh.yaml>            Snap selection to the nearest pixel
  rotate   -at u,v <mesh.yaml>            Align the nearest edge to U or V
  mirror   -at u,v <mesh.yaml>            Mirror selection around a corner
  size     <image>                        Print image dimensions
  config   [-save] [-o path]              Print the effective config, or save it

Common options:
  -config path  -debug  -log-file path
  -width N -height N -scale S -image path   grid overrides
  -selected -all -opaque -workers N -format F   unwrap/export options
  -o path                                   write mesh to path instead of in place

Directions accept x,y,z or an axis name (+X, -Z, ...).

Examples:
  pixeluv unwrap -image brick.png crate.yaml
  pixeluv unwrap -mode direction -dir +Z crate.yaml
  pixeluv export -width 32 -height 32 crate.yaml crate_uv.png`)
}

// command is the shared state of one subcommand run.
type command struct {
	fs    *flag.FlagSet
	flags *config.Flags
	out   string
	cfg   *config.Config
	pipe  *pipeline.Pipeline
}

func newCommand(name string) *command {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &command{fs: fs, flags: config.RegisterFlags(fs)}
	fs.StringVar(&c.out, "o", "", "Output mesh path (default: in place)")
	return c
}

// setup parses args, loads config and starts logging for this run.
func (c *command) setup(args []string, minArgs int, usage string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() < minArgs {
		return fmt.Errorf("usage: pixeluv %s", usage)
	}

	cfg, err := config.Load(c.flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.WithRun("")
	logger.Debug("command start",
		zap.String("command", c.fs.Name()),
		zap.Strings("args", args),
	)
	logger.Sugar.Debugf("Config: %+v", cfg)

	c.cfg = cfg
	c.pipe = pipeline.New(cfg, logger.Log)
	return nil
}

func (c *command) load() (*pipeline.Document, error) {
	return pipeline.LoadDocument(c.fs.Arg(0))
}

func cmdUnwrap(args []string) error {
	c := newCommand("unwrap")
	mode := c.fs.String("mode", string(pipeline.ModePixel), "pixel, auto, normal or direction")
	dir := c.fs.String("dir", "", "Projection direction for -mode direction")
	if err := c.setup(args, 1, "unwrap [options] <mesh.yaml>"); err != nil {
		return err
	}

	req := pipeline.UnwrapRequest{}
	var err error
	if req.Mode, err = pipeline.ParseMode(*mode); err != nil {
		return err
	}
	if req.Mode == pipeline.ModeDirection {
		if req.Direction, err = parseDirection(*dir); err != nil {
			return err
		}
	}

	doc, err := c.load()
	if err != nil {
		return err
	}
	rep, err := c.pipe.Unwrap(doc, req)
	if err != nil {
		return err
	}
	if err := doc.Save(c.out); err != nil {
		return err
	}

	fmt.Printf("%s: %d/%d faces unwrapped on %dx%d grid (%s)\n",
		rep.Mode, rep.Written, rep.Faces, rep.Grid.Width, rep.Grid.Height, rep.Grid.Source)
	if rep.Mode == pipeline.ModePixel {
		for _, a := range uv.Axes {
			fmt.Printf("  %s %d\n", a, rep.Histogram[a.Index()])
		}
	}
	return nil
}

func cmdExport(args []string) error {
	c := newCommand("export")
	if err := c.setup(args, 2, "export [options] <mesh.yaml> <image>"); err != nil {
		return err
	}

	doc, err := c.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := c.pipe.Export(ctx, doc, c.fs.Arg(1))
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d %s, %d polygons, %d pixels, checksum %016x\n",
		rep.Path, rep.Grid.Width, rep.Grid.Height, rep.Format,
		rep.Stats.Polygons, rep.Stats.Written, rep.Checksum)
	return nil
}

func cmdClassify(args []string) error {
	c := newCommand("classify")
	if err := c.setup(args, 1, "classify <mesh.yaml>"); err != nil {
		return err
	}

	doc, err := c.load()
	if err != nil {
		return err
	}
	classes, err := c.pipe.Classify(doc)
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-4s %10s %8s  %s\n", "FACE", "AXIS", "DEVIATION", "ABS", "NORMAL")
	for _, fc := range classes {
		if fc.Skipped {
			fmt.Printf("%-6d %-4s\n", fc.Face, "-")
			continue
		}
		fmt.Printf("%-6d %-4s %10.3f %8.3f  (%.3f, %.3f, %.3f)\n",
			fc.Face, fc.Axis, fc.Score.Deviation, fc.Score.Abs,
			fc.Normal.X, fc.Normal.Y, fc.Normal.Z)
	}
	return nil
}

func cmdIsolate(args []string) error {
	c := newCommand("isolate")
	dir := c.fs.String("dir", "", "Direction to keep")
	angle := c.fs.Float64("angle", 45, "Maximum deviation in degrees")
	if err := c.setup(args, 1, "isolate -dir x,y,z [-angle deg] <mesh.yaml>"); err != nil {
		return err
	}

	d, err := parseDirection(*dir)
	if err != nil {
		return err
	}
	doc, err := c.load()
	if err != nil {
		return err
	}
	kept, err := c.pipe.Isolate(doc, d, *angle*stdmath.Pi/180)
	if err != nil {
		return err
	}
	if err := doc.Save(c.out); err != nil {
		return err
	}
	fmt.Printf("%d faces selected\n", kept)
	return nil
}

func cmdEdit(op pipeline.EditOp, args []string) error {
	c := newCommand(string(op))
	at := c.fs.String("at", "", "Pointer position u,v")
	if err := c.setup(args, 1, string(op)+" -at u,v <mesh.yaml>"); err != nil {
		return err
	}

	pointer, err := parseVec2(*at)
	if err != nil {
		return err
	}
	doc, err := c.load()
	if err != nil {
		return err
	}
	changed, err := c.pipe.Edit(doc, op, pointer)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("nothing to do")
		return nil
	}
	return doc.Save(c.out)
}

func cmdConfig(args []string) error {
	c := newCommand("config")
	save := c.fs.Bool("save", false, "Write to the user config directory")
	if err := c.setup(args, 0, "config [-save] [-o path]"); err != nil {
		return err
	}

	switch {
	case c.out != "":
		if err := c.cfg.SaveTo(c.out); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", c.out)
	case *save:
		if err := c.cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", filepath.Join(config.ConfigDir(), config.FileName))
	default:
		data, err := yaml.Marshal(c.cfg)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	}
	return nil
}

func cmdSize(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pixeluv size <image>")
	}
	w, h, err := texture.ImageSize(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%dx%d\n", w, h)
	return nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseDirection accepts "x,y,z" or an axis name such as "+Z".
func parseDirection(s string) (math.Vec3, error) {
	if a, err := uv.ParseAxis(s); err == nil {
		return a.Vector(), nil
	}
	v, err := parseFloats(s, 3)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("direction: %w", err)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseVec2(s string) (math.Vec2, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return math.Vec2{}, fmt.Errorf("pointer: %w", err)
	}
	return math.Vec2{X: v[0], Y: v[1]}, nil
}
