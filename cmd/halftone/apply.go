package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/internal/imageio"
	"github.com/gogpu/halftone/render"
	"github.com/urfave/cli/v2"
)

var errNoInput = errors.New("input file is required")

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "halftone an image file",
		ArgsUsage: "<input>",
		Flags: append(renderFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: <input>-halftone.png)",
			},
			&cli.IntFlag{
				Name:  "max-width",
				Usage: "scale the input down to at most this width",
			},
			&cli.IntFlag{
				Name:  "max-height",
				Usage: "scale the input down to at most this height",
			},
		),
		Action: runApply,
	}
}

func runApply(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		return errNoInput
	}
	output := c.String("output")
	if output == "" {
		output = defaultOutput(input)
	}
	if _, err := imageio.FormatFor(output); err != nil {
		return err
	}

	p, err := paramsFromFlags(c)
	if err != nil {
		return err
	}

	src, err := imageio.Load(input)
	if err != nil {
		return err
	}
	src = imageio.Fit(src, c.Int("max-width"), c.Int("max-height"))

	r, err := newRenderer(c)
	if err != nil {
		return err
	}
	defer r.Close()

	dst := render.NewPixmapTarget(src.Width(), src.Height())
	if err := r.Render(c.Context, dst, src, p); err != nil {
		return err
	}
	if err := imageio.Save(output, dst.Pixmap()); err != nil {
		return err
	}

	halftone.Logger().Info("wrote image",
		"path", output,
		"size", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"grid", p.GridSize,
		"rotate", p.RotationDegrees,
	)
	return nil
}

// defaultOutput derives "<name>-halftone.png" next to the input.
func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-halftone.png"
}
