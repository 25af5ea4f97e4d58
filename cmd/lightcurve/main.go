// Command lightcurve smooths a lightcurve file and writes the residual variability around the
// smoothed trend.
//
// Usage:
//
//	lightcurve -in lc.dat -sigma 20 -window gaussian -out residual.dat -plot fit.html
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lightcurve "github.com/aouyang1/go-lightcurve"
	"github.com/aouyang1/go-lightcurve/series"
	"github.com/aouyang1/go-lightcurve/textio"
	"github.com/aouyang1/go-lightcurve/window"
	"github.com/goccy/go-json"
)

var (
	ErrNoInput           = errors.New("no input file")
	ErrWidthAndSigma     = errors.New("only one of width and sigma can be set")
	ErrUnknownSummaryFmt = errors.New("unknown summary format")
)

const (
	SummaryText = "text"
	SummaryJSON = "json"
	SummaryNone = "none"
)

type config struct {
	in         string
	twoCol     bool
	label      string
	timeUnit   string
	valueUnit  string
	redshift   float64
	configPath string
	width      float64
	sigma      float64
	step       float64
	window     string
	noOutliers bool
	out        string
	smoothed   string
	plot       string
	summary    string
	verbose    bool
}

func parseFlags(args []string) (*config, map[string]bool, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "", "input lightcurve file with time, value and uncertainty columns")
	fs.BoolVar(&cfg.twoCol, "two-col", false, "input has no uncertainty column, uncertainties are set to zero")
	fs.StringVar(&cfg.label, "label", "", "label of the input series")
	fs.StringVar(&cfg.timeUnit, "time-unit", series.DefaultTimeUnit, "time unit tag")
	fs.StringVar(&cfg.valueUnit, "value-unit", series.DefaultValueUnit, "value unit tag")
	fs.Float64Var(&cfg.redshift, "z", 0, "redshift tag, carried but unused")
	fs.StringVar(&cfg.configPath, "config", "", "json file with decomposition options")
	fs.Float64Var(&cfg.width, "width", 0, "smoothing width in time units")
	fs.Float64Var(&cfg.sigma, "sigma", 0, "gaussian smoothing sigma in time units, converted into a width")
	fs.Float64Var(&cfg.step, "step", 0, "resampling step in time units")
	fs.StringVar(&cfg.window, "window", "", "smoothing window, boxcar or gaussian")
	fs.BoolVar(&cfg.noOutliers, "no-outliers", false, "skip residual outlier detection")
	fs.StringVar(&cfg.out, "out", "", "file to write the residual series to")
	fs.StringVar(&cfg.smoothed, "smoothed", "", "file to write the smoothed series to")
	fs.StringVar(&cfg.plot, "plot", "", "html file to render the fit into")
	fs.StringVar(&cfg.summary, "summary", SummaryText, "summary written to stdout: text, json or none")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return cfg, set, nil
}

func loadOptions(cfg *config, set map[string]bool) (*lightcurve.Options, error) {
	opt := lightcurve.NewDefaultOptions(0)
	if cfg.configPath != "" {
		data, err := os.ReadFile(cfg.configPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, opt); err != nil {
			return nil, fmt.Errorf("unable to parse config %s, %w", cfg.configPath, err)
		}
		if opt.SmoothOptions == nil {
			opt.SmoothOptions = lightcurve.NewDefaultOptions(0).SmoothOptions
		}
	}

	if set["width"] && set["sigma"] {
		return nil, ErrWidthAndSigma
	}
	if set["width"] {
		opt.SmoothOptions.Width = cfg.width
	}
	if set["sigma"] {
		opt.SmoothOptions.Width = window.WidthFromSigma(cfg.sigma)
	}
	if set["step"] {
		opt.SmoothOptions.ResamplingStep = cfg.step
	}
	if set["window"] {
		wType, err := window.ParseType(cfg.window)
		if err != nil {
			return nil, err
		}
		opt.SmoothOptions.Window = wType
	}
	if cfg.noOutliers {
		opt.OutlierOptions = nil
	}
	return opt, nil
}

func run(args []string, stdout io.Writer) error {
	cfg, set, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.in == "" {
		return ErrNoInput
	}
	switch cfg.summary {
	case SummaryText, SummaryJSON, SummaryNone:
	default:
		return fmt.Errorf("%q, %w", cfg.summary, ErrUnknownSummaryFmt)
	}

	opt, err := loadOptions(cfg, set)
	if err != nil {
		return fmt.Errorf("unable to load options, %w", err)
	}

	meta := series.NewDefaultMeta()
	meta.TimeUnit = cfg.timeUnit
	meta.ValueUnit = cfg.valueUnit
	meta.Redshift = cfg.redshift
	meta.Label = cfg.label

	s, err := textio.ReadFile(cfg.in, &textio.ReadOptions{TwoColumn: cfg.twoCol, Meta: meta})
	if err != nil {
		return err
	}
	slog.Debug("loaded lightcurve", "path", cfg.in, "points", s.Len())

	res, err := lightcurve.Decompose(s, opt)
	if err != nil {
		return err
	}

	var outputs []output
	if cfg.out != "" {
		var buf bytes.Buffer
		if err := textio.Write(&buf, res.Residual); err != nil {
			return fmt.Errorf("unable to render residual, %w", err)
		}
		outputs = append(outputs, output{path: cfg.out, data: buf.Bytes()})
	}
	if cfg.smoothed != "" {
		var buf bytes.Buffer
		if err := textio.Write(&buf, res.Smoothed); err != nil {
			return fmt.Errorf("unable to render smoothed series, %w", err)
		}
		outputs = append(outputs, output{path: cfg.smoothed, data: buf.Bytes()})
	}
	if cfg.plot != "" {
		var buf bytes.Buffer
		if err := res.RenderFit(&buf); err != nil {
			return fmt.Errorf("unable to plot fit, %w", err)
		}
		outputs = append(outputs, output{path: cfg.plot, data: buf.Bytes()})
	}

	var summary bytes.Buffer
	switch cfg.summary {
	case SummaryText:
		summary.WriteString(res.OriginalSummary.String())
		fmt.Fprintf(&summary, "residual outliers: %d\n", len(res.ResidualOutliers))
	case SummaryJSON:
		report := struct {
			Options *lightcurve.Options `json:"options"`
			*lightcurve.Result
		}{
			Options: opt,
			Result:  res,
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		summary.Write(out)
		summary.WriteByte('\n')
	}

	if err := writeOutputs(outputs); err != nil {
		return err
	}
	_, err = stdout.Write(summary.Bytes())
	return err
}

type output struct {
	path string
	data []byte
}

// writeOutputs stages every output in a temporary file next to its destination and only renames
// them into place once all of them were written. On failure every staged file is removed.
func writeOutputs(outputs []output) error {
	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, o := range outputs {
		tmp, err := stage(o)
		if err != nil {
			cleanup()
			return fmt.Errorf("unable to write %s, %w", o.path, err)
		}
		staged = append(staged, tmp)
	}

	for i, o := range outputs {
		if err := os.Rename(staged[i], o.path); err != nil {
			cleanup()
			return fmt.Errorf("unable to write %s, %w", o.path, err)
		}
	}
	return nil
}

func stage(o output) (string, error) {
	file, err := os.CreateTemp(filepath.Dir(o.path), "."+filepath.Base(o.path)+".*")
	if err != nil {
		return "", err
	}
	if _, err := file.Write(o.data); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Chmod(0o644); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("lightcurve failed", "error", err.Error())
		os.Exit(1)
	}
}
