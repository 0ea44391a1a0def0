// Command halftone applies the CMYK hexagonal halftone filter to images
// and renders an animated demo scene through it.
//
// Usage:
//
//	halftone apply photo.jpg -o dots.png --grid 12 --rotate 5
//	halftone demo -o frame-%03d.png --frames 60 --animate
//	halftone wgsl > halftone.wgsl
//	halftone spirv -o halftone.spv
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/render"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "halftone:", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "halftone",
		Usage: "CMYK hexagonal halftone filter",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-frame details",
				EnvVars: []string{"HALFTONE_VERBOSE"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			applyCommand(),
			demoCommand(),
			wgslCommand(),
			spirvCommand(),
		},
	}
}

// setupLogger routes library logs to the app's error writer.
func setupLogger(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	halftone.SetLogger(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// renderFlags are shared by the commands that run the filter.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "grid",
			Aliases: []string{"g"},
			Value:   halftone.DefaultGridSize,
			Usage:   "distance between dot centers, in pixels",
			EnvVars: []string{"HALFTONE_GRID"},
		},
		&cli.Float64Flag{
			Name:    "rotate",
			Aliases: []string{"r"},
			Usage:   "extra screen rotation, in degrees",
			EnvVars: []string{"HALFTONE_ROTATE"},
		},
		&cli.BoolFlag{
			Name:    "disable",
			Usage:   "pass the source through unchanged",
			EnvVars: []string{"HALFTONE_DISABLE"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "shading goroutines (0 uses GOMAXPROCS)",
			EnvVars: []string{"HALFTONE_WORKERS"},
		},
		&cli.StringFlag{
			Name:    "filter",
			Value:   render.FilterNearest.String(),
			Usage:   "source sampling filter: nearest or bilinear",
			EnvVars: []string{"HALFTONE_FILTER"},
		},
	}
}

// paramsFromFlags builds and validates the fixed frame parameters.
func paramsFromFlags(c *cli.Context) (halftone.Params, error) {
	p := halftone.Params{
		Enabled:         !c.Bool("disable"),
		GridSize:        c.Float64("grid"),
		RotationDegrees: c.Float64("rotate"),
	}
	if err := p.Validate(); err != nil {
		return halftone.Params{}, err
	}
	return p, nil
}

// newRenderer creates a renderer configured from the shared flags.
func newRenderer(c *cli.Context) (*render.Renderer, error) {
	filter, err := render.ParseFilter(c.String("filter"))
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(
		render.WithWorkers(c.Int("workers")),
		render.WithFilter(filter),
	), nil
}
