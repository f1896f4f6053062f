package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/midbel/diagram/logging"
	"github.com/spf13/cobra"
)

type options struct {
	kind    string
	style   string
	format  string
	file    string
	dir     string
	width   float64
	height  float64
	radius  float64
	seed    int64
	legend  bool
	percent bool
	jobs    int

	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "draw [file...]",
		Short: "Render diagrams described in YAML, JSON or CSV files",
		Long: `draw renders pie, bar, multibar and line diagrams to SVG or to a raster image.

YAML and JSON files can hold several documents, one per diagram. CSV files need
the chart type to be given with --type.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	fs := root.Flags()
	fs.StringVar(&opts.kind, "type", "", "chart type of CSV inputs (pie, bar, multibar, line)")
	fs.StringVar(&opts.style, "style", "", "style preset (screen, classic, print)")
	fs.StringVar(&opts.format, "format", "", "output format (svg, png, jpg, gif, bmp, tiff)")
	fs.StringVarP(&opts.file, "file", "o", "", "output file, - for stdout")
	fs.StringVarP(&opts.dir, "dir", "d", ".", "output directory when rendering several diagrams")
	fs.Float64Var(&opts.width, "width", 0, "canvas width")
	fs.Float64Var(&opts.height, "height", 0, "canvas height")
	fs.Float64Var(&opts.radius, "radius", 100, "radius of pie charts read from CSV")
	fs.Int64Var(&opts.seed, "seed", 0, "seed used to pick colors")
	fs.BoolVar(&opts.legend, "legend", true, "draw the legend of CSV inputs")
	fs.BoolVar(&opts.percent, "percentages", false, "add percentages to the legend of CSV inputs")
	fs.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of diagrams rendered in parallel")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "console", "log format (json, console)")

	return root
}

func run(cmd *cobra.Command, opts options, files []string) error {
	logger := logging.New(logging.Config{
		Level:  opts.logLevel,
		Format: opts.logFormat,
		Output: cmd.ErrOrStderr(),
	})
	jobs, err := plan(cmd, opts, files)
	if err != nil {
		return err
	}
	return renderAll(cmd.Context(), logger, jobs, opts.jobs)
}
