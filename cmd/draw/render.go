package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/felixgeelhaar/bolt/v3"
	"github.com/midbel/diagram"
	"github.com/midbel/diagram/decode"
	"github.com/midbel/diagram/logging"
	"github.com/midbel/diagram/surface"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const formatSVG = "svg"

var errMultipleOutputs = errors.New("--file can only be used with a single diagram")

type job struct {
	file   string
	index  int
	out    string
	format string
	cfg    diagram.Config
}

// plan reads all the inputs and decides where each diagram is written. No
// output is created before every input has been decoded.
func plan(cmd *cobra.Command, opts options, files []string) ([]job, error) {
	var jobs []job
	for _, f := range files {
		list, err := load(opts, f)
		if err != nil {
			return nil, err
		}
		for i, cfg := range list {
			if err := override(cmd, opts, &cfg); err != nil {
				return nil, err
			}
			j := job{
				file:  f,
				index: i,
				cfg:   cfg,
			}
			j.out = outputName(opts.dir, f, i, len(list))
			jobs = append(jobs, j)
		}
	}
	if opts.file != "" {
		if len(jobs) > 1 {
			return nil, errMultipleOutputs
		}
		jobs[0].out = opts.file
	}
	for i := range jobs {
		format, err := outputFormat(opts.format, opts.file)
		if err != nil {
			return nil, err
		}
		jobs[i].format = format
		if opts.file == "" {
			jobs[i].out += "." + format
		}
	}
	return jobs, nil
}

func load(opts options, file string) ([]diagram.Config, error) {
	if strings.ToLower(filepath.Ext(file)) != ".csv" {
		return decode.DecodeFile(file)
	}
	if opts.kind == "" {
		return nil, fmt.Errorf("%s: --type is required for csv inputs", file)
	}
	kind, err := diagram.ParseKind(opts.kind)
	if err != nil {
		return nil, err
	}
	data, err := decode.LoadCSVFile(file)
	if err != nil {
		return nil, err
	}
	cfg := diagram.Config{
		Kind:  kind,
		Title: baseName(file),
		Data:  data,
		Diagram: diagram.Layout{
			Radius: opts.radius,
			Grid:   diagram.AutoGrid(),
		},
		Legend: diagram.Legend{
			Visible:     opts.legend,
			Percentages: opts.percent,
		},
		Style: diagram.DefaultStyle(),
	}
	return []diagram.Config{cfg}, nil
}

// override applies the flags explicitly given on the command line.
func override(cmd *cobra.Command, opts options, cfg *diagram.Config) error {
	fs := cmd.Flags()
	if fs.Changed("style") {
		style, err := diagram.LookupStyle(opts.style)
		if err != nil {
			return err
		}
		style.Seed = cfg.Style.Seed
		cfg.Style = style
	}
	if fs.Changed("seed") {
		if cfg.Style.Name == "" {
			cfg.Style = diagram.DefaultStyle()
		}
		cfg.Style.Seed = opts.seed
	}
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	return nil
}

func outputName(dir, file string, index, count int) string {
	name := baseName(file)
	if count > 1 {
		name += "-" + strconv.Itoa(index+1)
	}
	return filepath.Join(dir, name)
}

func outputFormat(format, file string) (string, error) {
	if format == "" && file != "" && file != "-" {
		format = strings.TrimPrefix(filepath.Ext(file), ".")
	}
	format = strings.ToLower(format)
	if format == "" || format == formatSVG {
		return formatSVG, nil
	}
	if _, err := imaging.FormatFromExtension(format); err != nil {
		return "", fmt.Errorf("%s: unsupported output format", format)
	}
	return format, nil
}

func baseName(file string) string {
	file = filepath.Base(file)
	for {
		e := filepath.Ext(file)
		if e == "" {
			break
		}
		file = strings.TrimSuffix(file, e)
	}
	return file
}

func renderAll(ctx context.Context, logger *bolt.Logger, jobs []job, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var (
				now    = time.Now()
				err    = j.render()
				fields = []logging.Field{
					logging.Chart(string(j.cfg.Kind)),
					logging.File(j.file),
					logging.Index(j.index),
					logging.Duration(time.Since(now)),
				}
			)
			if err != nil {
				fields = append(fields, logging.Err(err))
				logging.With(logger.Error(), fields...).Msg("render failed")
				return fmt.Errorf("%s: %w", j.file, err)
			}
			logging.With(logger.Info(), fields...).Msg("diagram rendered")
			return nil
		})
	}
	return g.Wait()
}

// render encodes the diagram in memory so that a failure leaves no partial
// file behind.
func (j job) render() error {
	d, err := diagram.New(j.cfg)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := j.encode(&buf, d); err != nil {
		return err
	}
	if j.out == "-" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(j.out, buf.Bytes(), 0o644)
}

func (j job) encode(w io.Writer, d *diagram.Diagram) error {
	if j.format == formatSVG {
		s := surface.NewSVG(d.Width, d.Height)
		d.Draw(s)
		return s.Render(w)
	}
	format, err := imaging.FormatFromExtension(j.format)
	if err != nil {
		return err
	}
	img := surface.NewImage(d.Width, d.Height, diagram.White)
	d.Draw(img)
	return img.Encode(w, format)
}
