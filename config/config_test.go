package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper() error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Default()
	if cfg.UI != want.UI || cfg.Paging != want.Paging || cfg.Logging != want.Logging {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
	if cfg.LogDir() != "" {
		t.Errorf("LogDir() = %q with logging disabled", cfg.LogDir())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "custom.yaml")
	data := "ui:\n  theme: mono\n  max_visible: 8\nlogging:\n  enabled: true\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRIDSOURCE_PAGING_PAGE_SIZE", "5")

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper() error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.UI.Theme != "mono" || cfg.UI.MaxVisible != 8 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.Paging.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5 from env", cfg.Paging.PageSize)
	}
	if cfg.LogDir() != filepath.Join(dir, "gridsource") {
		t.Errorf("LogDir() = %q", cfg.LogDir())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"negative max visible", func(c *Config) { c.UI.MaxVisible = -1 }, "ui.max_visible"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"zero pool", func(c *Config) { c.UI.PoolSize = 0 }, "ui.pool_size"},
		{"zero page size", func(c *Config) { c.Paging.PageSize = 0 }, "paging.page_size"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"two sources", func(c *Config) {
			c.Source.Script = "a.lua"
			c.Source.Manifest = "a.yaml"
		}, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			errs := c.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("Validate() = %v, want one error for %s", errs, tt.field)
			}
		})
	}

	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("defaults invalid: %v", errs)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") || !strings.Contains(msg, "b: worse (got: 2)") {
		t.Errorf("Error() = %q", msg)
	}
}
