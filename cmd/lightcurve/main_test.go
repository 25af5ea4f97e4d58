package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aouyang1/go-lightcurve/textio"
	"github.com/aouyang1/go-lightcurve/window"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir string, twoCol bool) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		tPnt := float64(i) * 0.7
		y := math.Sin(tPnt*0.2) + 0.1*math.Cos(tPnt*7)
		if twoCol {
			fmt.Fprintf(&sb, "%g %g\n", tPnt, y)
			continue
		}
		fmt.Fprintf(&sb, "%g %g 0.05\n", tPnt, y)
	}
	path := filepath.Join(dir, "lc.dat")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, false)
	out := filepath.Join(dir, "residual.dat")
	smoothed := filepath.Join(dir, "smoothed.dat")
	plot := filepath.Join(dir, "fit.html")

	var stdout bytes.Buffer
	err := run([]string{
		"-in", in, "-sigma", "5", "-window", "gaussian",
		"-out", out, "-smoothed", smoothed, "-plot", plot,
	}, &stdout)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "number of observations: 80")

	residual, err := textio.ReadFile(out, nil)
	require.NoError(t, err)
	trend, err := textio.ReadFile(smoothed, nil)
	require.NoError(t, err)
	assert.Equal(t, 80, residual.Len())
	assert.Equal(t, residual.Times(), trend.Times())

	_, err = os.Stat(plot)
	assert.NoError(t, err)
}

func TestRunJSONSummary(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, true)

	configPath := filepath.Join(dir, "opt.json")
	config := `{"smooth_options":{"width":4,"resampling_step":0.05,"window":"boxcar","propagate_errors":true}}`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	var stdout bytes.Buffer
	err := run([]string{"-in", in, "-two-col", "-config", configPath, "-window", "gaussian", "-summary", "json"}, &stdout)
	require.NoError(t, err)

	var report struct {
		Options struct {
			SmoothOptions struct {
				Width          float64     `json:"width"`
				ResamplingStep float64     `json:"resampling_step"`
				Window         window.Type `json:"window"`
			} `json:"smooth_options"`
		} `json:"options"`
		OriginalSummary struct {
			Count int `json:"count"`
		} `json:"original_summary"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, 4.0, report.Options.SmoothOptions.Width)
	assert.Equal(t, 0.05, report.Options.SmoothOptions.ResamplingStep)
	assert.Equal(t, window.Gaussian, report.Options.SmoothOptions.Window)
	assert.Equal(t, 80, report.OriginalSummary.Count)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, false)
	out := filepath.Join(dir, "residual.dat")

	testData := map[string]struct {
		args []string
		err  error
	}{
		"no input": {
			args: []string{"-width", "3"},
			err:  ErrNoInput,
		},
		"width and sigma": {
			args: []string{"-in", in, "-width", "3", "-sigma", "2", "-out", out},
			err:  ErrWidthAndSigma,
		},
		"unknown window": {
			args: []string{"-in", in, "-width", "3", "-window", "hann", "-out", out},
			err:  window.ErrUnknownType,
		},
		"unknown summary": {
			args: []string{"-in", in, "-width", "3", "-summary", "xml", "-out", out},
			err:  ErrUnknownSummaryFmt,
		},
		"missing width": {
			args: []string{"-in", in, "-out", out},
		},
		"smoothed into missing directory": {
			args: []string{"-in", in, "-width", "3", "-out", out, "-smoothed", filepath.Join(dir, "missing", "s.dat"), "-summary", "none"},
		},
		"plot into missing directory": {
			args: []string{"-in", in, "-width", "3", "-out", out, "-smoothed", filepath.Join(dir, "s.dat"), "-plot", filepath.Join(dir, "missing", "fit.html")},
		},
		"two column input read as three": {
			args: []string{"-in", writeInput(t, t.TempDir(), true), "-width", "3", "-out", out},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := run(td.args, &bytes.Buffer{})
			require.Error(t, err)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
			}
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no output may be written on failure")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "lc.dat", entries[0].Name())
		})
	}
}
