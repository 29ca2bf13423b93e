package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/aieps"
	"github.com/tdewolff/aieps/eps"
	"github.com/tdewolff/argp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Convert struct {
	Output          string `short:"o" default:"" desc:"Output file, defaults to the input file with .eps extension"`
	Config          string `default:"" desc:"Options file in TOML format"`
	NoAutoClose     bool   `desc:"Keep filled paths open that are not closed explicitly"`
	KeepInvisible   bool   `desc:"Keep hidden elements and shapes without paint"`
	KeepStrayPoints bool   `desc:"Keep path segments consisting of a single moveto"`
	Precision       int    `default:"-1" desc:"Number of decimals"`
	Preview         bool   `desc:"Add EPSI preview"`
	Verbose         bool   `short:"v" desc:"Verbose output"`
	Input           string `index:"0" default:"" desc:"Input SVG file, - for stdin"`
}

func main() {
	root := argp.NewCmd(&Convert{}, "SVG to Illustrator EPS converter")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Convert) Run() error {
	log, err := newLogger(cmd.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := cmd.options()
	if err != nil {
		return err
	}
	opts.Logger = log

	var r io.Reader = os.Stdin
	if cmd.Input != "" && cmd.Input != "-" {
		f, err := os.Open(cmd.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	output := cmd.Output
	if output == "" && cmd.Input != "" && cmd.Input != "-" {
		output = strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input)) + ".eps"
	}
	var w io.Writer = os.Stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	diag, err := eps.Convert(w, r, &opts)
	if diag != nil {
		for _, alert := range diag.Alerts() {
			log.Warn(alert.Message, zap.Strings("ids", alert.IDs))
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}
	return nil
}

// options loads the options file, if any, and applies the flags on top of it.
func (cmd *Convert) options() (aieps.Options, error) {
	opts := aieps.DefaultOptions
	if cmd.Config != "" {
		f, err := os.Open(cmd.Config)
		if err != nil {
			return opts, err
		}
		defer f.Close()

		if opts, err = aieps.LoadOptions(f); err != nil {
			return opts, fmt.Errorf("%s: %w", cmd.Config, err)
		}
	}
	if cmd.NoAutoClose {
		opts.AutoClose = false
	}
	if cmd.KeepInvisible {
		opts.RemoveInvisible = false
	}
	if cmd.KeepStrayPoints {
		opts.RemoveStrayPoints = false
	}
	if cmd.Precision != -1 {
		if cmd.Precision < 0 || 15 < cmd.Precision {
			return opts, fmt.Errorf("precision must be between 0 and 15: %d", cmd.Precision)
		}
		opts.Precision = cmd.Precision
	}
	if cmd.Preview {
		opts.Preview = true
	}
	return opts, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
