package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsMatchHardcodedPipeline(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataPath != "iris_dataset.csv" {
		t.Fatalf("data_path = %q", c.DataPath)
	}
	if c.LabelColumn != "target" {
		t.Fatalf("label_column = %q", c.LabelColumn)
	}
	if c.PetalLengthColumn != "petal length (cm)" || c.SepalLengthColumn != "sepal length (cm)" {
		t.Fatalf("columns = %q / %q", c.PetalLengthColumn, c.SepalLengthColumn)
	}
	if c.HeadRows != 5 || c.HistBins != 20 {
		t.Fatalf("head_rows=%d hist_bins=%d", c.HeadRows, c.HistBins)
	}
	if !c.OpenCharts || c.Debug {
		t.Fatalf("open_charts=%v debug=%v", c.OpenCharts, c.Debug)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".iris-explorer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("label_column: species\nhist_bins: 30\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("IRISX_HIST_BINS", "12")

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LabelColumn != "species" {
		t.Fatalf("label_column = %q, want value from file", c.LabelColumn)
	}
	if c.HistBins != 12 {
		t.Fatalf("hist_bins = %d, want env override", c.HistBins)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing --config file")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Set("data_path", "data/flowers.csv"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set("open_charts", "false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Save(c, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DataPath != "data/flowers.csv" || got.OpenCharts {
		t.Fatalf("reloaded = %+v", got)
	}
}

func TestSet_RejectsBadValues(t *testing.T) {
	c := &Global{}
	for _, kv := range [][2]string{{"hist_bins", "0"}, {"head_rows", "x"}, {"debug", "maybe"}, {"api_key", "x"}} {
		if err := c.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("Set(%q, %q) accepted", kv[0], kv[1])
		}
	}
}
