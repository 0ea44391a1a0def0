package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/shader"
	"github.com/urfave/cli/v2"
)

func wgslCommand() *cli.Command {
	return &cli.Command{
		Name:  "wgsl",
		Usage: "print the WGSL fragment shader",
		Action: func(c *cli.Context) error {
			_, err := io.WriteString(c.App.Writer, shader.Source())
			return err
		},
	}
}

func spirvCommand() *cli.Command {
	return &cli.Command{
		Name:  "spirv",
		Usage: "compile the shader to SPIR-V",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
		},
		Action: runSPIRV,
	}
}

func runSPIRV(c *cli.Context) error {
	words, err := shader.Compile()
	if err != nil {
		return err
	}
	halftone.Logger().Info("shader compiled", "words", len(words))

	path := c.String("output")
	if path == "" {
		return binary.Write(c.App.Writer, binary.LittleEndian, words)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, words); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
