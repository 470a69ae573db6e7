package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(t *testing.T, root *cobra.Command, args ...string) (output string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Flag values persist across executions of the same command tree.
	cfgFile, logLevel = "", ""
	dumpAll, dumpWidth = false, 40

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "gridsource" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gridsource")
	}

	// Compare by Name(), not Use which includes args
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range []string{"view", "dump", "version"} {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, rootCmd, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.HasPrefix(out, "gridsource "+Version) {
		t.Errorf("output = %q", out)
	}
}

func TestDumpManifest(t *testing.T) {
	path := writeFile(t, "produce.yaml", `
sections:
  - header: Fruit
    items: [apple, banana]
    loading: Loading
    pages:
      - [cherry]
  - static:
      - id: Special
        item: carrot
    footer: 1 veg
  - count: 2
`)

	out, err := executeCommand(t, rootCmd, "dump", path)
	if err != nil {
		t.Fatalf("dump error: %v\n%s", err, out)
	}
	for _, want := range []string{"IDENTIFIER", "Fruit", "banana", "Loading", "loading", "Special", "carrot", "1 veg", "overridden", "<nil>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cherry") {
		t.Errorf("pages should not load without --all:\n%s", out)
	}
}

func TestDumpAllLoadsPages(t *testing.T) {
	path := writeFile(t, "fruit.lua", `
		grid.section{ items = {'apple'}, loading = 'Loading' }
		grid.on_load_more(function(section, loaded)
			if loaded == 1 then return {'banana'}, false end
			return {'cherry'}, true
		end)
	`)

	out, err := executeCommand(t, rootCmd, "dump", "--all", path)
	if err != nil {
		t.Fatalf("dump error: %v\n%s", err, out)
	}
	for _, want := range []string{"apple", "banana", "cherry"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Loading") {
		t.Errorf("loading row left after every page loaded:\n%s", out)
	}
}

func TestDumpErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want string
	}{
		{"no source", func(t *testing.T) []string { return []string{"dump"} }, "no source given"},
		{"unknown type", func(t *testing.T) []string {
			return []string{"dump", writeFile(t, "data.txt", "x")}
		}, "unknown source type"},
		{"script error", func(t *testing.T) []string {
			return []string{"dump", writeFile(t, "bad.lua", "grid.section{ items = 1 }")}
		}, "items must be a table"},
		{"bad log level", func(t *testing.T) []string {
			return []string{"dump", "--log-level", "loud", writeFile(t, "ok.yaml", "sections:\n  - items: [a]\n")}
		}, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args(t)
			_, err := executeCommand(t, rootCmd, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
