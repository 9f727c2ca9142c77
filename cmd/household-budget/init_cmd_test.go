package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/household-budget/internal/config"
)

func TestWriteStarterConfigRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeStarterConfig(&buf, format); err != nil {
				t.Fatalf("writeStarterConfig() error = %v", err)
			}

			path := filepath.Join(t.TempDir(), "budget."+format)
			if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
				t.Fatalf("failed to write starter config: %v", err)
			}

			conf, err := config.LoadConfiguration(path)
			if err != nil {
				t.Fatalf("starter config does not load: %v", err)
			}

			defaults := config.Default()
			if conf.Loan != defaults.Loan || conf.Income != defaults.Income {
				t.Errorf("starter config differs from defaults: %+v %+v", conf.Loan, conf.Income)
			}
			if len(conf.Expenses) != len(defaults.Expenses) {
				t.Errorf("expected %d expenses, got %d", len(defaults.Expenses), len(conf.Expenses))
			}
			if conf.Output.Format != "pretty" || conf.Logging.Level != "info" {
				t.Errorf("expected starter output and logging sections, got %+v %+v", conf.Output, conf.Logging)
			}
		})
	}
}

func TestWriteStarterConfigInvalidFormat(t *testing.T) {
	if err := writeStarterConfig(&bytes.Buffer{}, "json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
