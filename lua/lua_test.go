package lua

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drake/gridsource/source"
)

// testCase represents a single test case from JSON
type testCase struct {
	Name             string     `json:"name"`
	SetupLua         any        `json:"setup_lua"`
	ExpectedSections [][]string `json:"expected_sections,omitempty"`
	ExpectedHeaders  []string   `json:"expected_headers,omitempty"`
	ExpectedFooters  []string   `json:"expected_footers,omitempty"`
	ExpectedError    string     `json:"expected_error,omitempty"`
}

type testDataFile struct {
	Tests []testCase `json:"tests"`
}

// setupTest creates a test environment and returns a cleanup function
func setupTest(t *testing.T) (*Engine, *MockHost, func()) {
	t.Helper()

	host := NewMockHost()
	engine := NewEngine(host)

	// Initialize the VM
	if err := engine.Init(); err != nil {
		t.Fatal("Failed to initialize engine:", err)
	}

	cleanup := func() {
		engine.Close()
	}

	return engine, host, cleanup
}

func loadTestData(t *testing.T, filename string) testDataFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test data %s: %v", filename, err)
	}

	var testData testDataFile
	if err := json.Unmarshal(data, &testData); err != nil {
		t.Fatalf("Failed to parse test data %s: %v", filename, err)
	}
	return testData
}

// executeSetupLua handles both string and []string Lua setup code. It
// returns the first error.
func executeSetupLua(engine *Engine, name string, setup any) error {
	switch lua := setup.(type) {
	case string:
		return engine.DoString(name, lua)
	case []any:
		// Joined so locals stay in scope across lines.
		lines := make([]string, len(lua))
		for i, line := range lua {
			lines[i] = line.(string)
		}
		return engine.DoString(name, strings.Join(lines, "\n"))
	}
	return nil
}

// describe renders an entry as "identifier:item".
func describe(e source.Entry) string {
	return fmt.Sprintf("%s:%v", e.Identifier, e.Item)
}

func describeDecoration(l *source.List, kind source.Kind) string {
	e, ok, _ := l.ResolveDecoration(kind, source.IndexPath{})
	if !ok {
		return ""
	}
	return describe(e)
}

// executeTest runs a single test case
func executeTest(t *testing.T, tt testCase) {
	t.Helper()
	t.Run(tt.Name, func(t *testing.T) {
		engine, _, cleanup := setupTest(t)
		defer cleanup()

		err := executeSetupLua(engine, tt.Name, tt.SetupLua)
		if tt.ExpectedError != "" {
			if err == nil || !strings.Contains(err.Error(), tt.ExpectedError) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.ExpectedError)
			}
			return
		}
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		sections := engine.Sections()
		if len(sections) != len(tt.ExpectedSections) {
			t.Fatalf("got %d sections, want %d", len(sections), len(tt.ExpectedSections))
		}

		g := engine.Grouped()
		for s, want := range tt.ExpectedSections {
			n, err := g.RowCount(s)
			if err != nil {
				t.Fatalf("RowCount(%d) error: %v", s, err)
			}
			got := make([]string, n)
			for r := 0; r < n; r++ {
				e, err := g.ResolveCell(source.IndexPath{Section: s, Row: r})
				if err != nil {
					t.Fatalf("ResolveCell(%d, %d) error: %v", s, r, err)
				}
				got[r] = describe(e)
			}
			if strings.Join(got, "|") != strings.Join(want, "|") {
				t.Errorf("section %d = %q, want %q", s, got, want)
			}
		}

		for s, want := range tt.ExpectedHeaders {
			if got := describeDecoration(sections[s], source.KindHeader); got != want {
				t.Errorf("header %d = %q, want %q", s, got, want)
			}
		}
		for s, want := range tt.ExpectedFooters {
			if got := describeDecoration(sections[s], source.KindFooter); got != want {
				t.Errorf("footer %d = %q, want %q", s, got, want)
			}
		}
	})
}

// TestFeatures runs all feature tests from JSON files
func TestFeatures(t *testing.T) {
	files, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), "_tests.json") {
			feature := strings.TrimSuffix(file.Name(), "_tests.json")
			t.Run(feature, func(t *testing.T) {
				testData := loadTestData(t, file.Name())

				for _, tt := range testData.Tests {
					executeTest(t, tt)
				}
			})
		}
	}
}

func TestLoadMore(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("paging", `
		grid.section{ items = {'a', 'b'}, loading = 'Loading' }
		grid.on_load_more(function(section, loaded)
			if loaded >= 4 then
				return {'e'}, true
			end
			return {'c', 'd'}, false
		end)
	`)
	if err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	items, done, err := engine.LoadMore(0, 2)
	if err != nil || done || fmt.Sprint(items) != "[c d]" {
		t.Fatalf("first page = %v, %v, %v", items, done, err)
	}

	items, done, err = engine.LoadMore(0, 4)
	if err != nil || !done || fmt.Sprint(items) != "[e]" {
		t.Errorf("last page = %v, %v, %v", items, done, err)
	}

	if _, _, err := engine.LoadMore(3, 0); !errors.Is(err, source.ErrIndexOutOfRange) {
		t.Errorf("LoadMore(3) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestLoadMoreWithoutHandler(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	if err := engine.DoString("plain", "grid.section{ items = {'a'}, loading = 'Loading' }"); err != nil {
		t.Fatal(err)
	}
	items, done, err := engine.LoadMore(0, 1)
	if err != nil || !done || len(items) != 0 {
		t.Errorf("LoadMore() = %v, %v, %v; want done", items, done, err)
	}
}

func TestLoadMoreHandlerError(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("broken", `
		grid.section{ items = {} }
		grid.on_load_more(function() error('backend down') end)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.LoadMore(0, 0); err == nil || !strings.Contains(err.Error(), "backend down") {
		t.Errorf("error = %v, want backend down", err)
	}
}

func TestSelectAndLog(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("select", `
		grid.section{ items = {'apple'} }
		grid.on_select(function(section, row, item, id)
			grid.log(string.format('%d/%d %s %s', section, row, item, id))
		end)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Select(source.IndexPath{Row: 0}, source.Entry{Identifier: "Cell", Item: "apple"}); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	logs := host.DrainLogCalls()
	if len(logs) != 1 || logs[0] != "1/1 apple Cell" {
		t.Errorf("logs = %q", logs)
	}
}

func TestSetItemsNotifiesHost(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("notify", `
		grid.section{ items = {} }
		grid.section{ items = {} }
		grid.set_items(2, {'x'})
		grid.set_loading(2, nil)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(host.ChangedCalls) != "[1 1]" {
		t.Errorf("ChangedCalls = %v, want [1 1]", host.ChangedCalls)
	}
}

func TestFreeze(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("setup", `
		grid.section{ items = {'a'} }
		grid.on_load_more(function() grid.set_items(1, {}) return {}, true end)
	`)
	if err != nil {
		t.Fatal(err)
	}
	engine.Freeze()

	if err := engine.DoString("late", "grid.section{}"); err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("grid.section after Freeze: error = %v", err)
	}
	if _, _, err := engine.LoadMore(0, 1); err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("set_items in on_load_more after Freeze: error = %v", err)
	}
	if n, _ := engine.Sections()[0].RowCount(0); n != 1 {
		t.Errorf("section changed after Freeze: %d rows", n)
	}
}

func TestChunkCacheSurvivesInit(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	code := "grid.section{ items = {'a'} }"
	if err := engine.DoString("cached", code); err != nil {
		t.Fatal(err)
	}
	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	if len(engine.Sections()) != 0 {
		t.Fatal("Init() should drop sections")
	}
	if err := engine.DoString("cached", code); err != nil {
		t.Fatal(err)
	}
	if engine.chunkCache.Len() != 1 {
		t.Errorf("chunk cache has %d entries, want 1", engine.chunkCache.Len())
	}
	if len(engine.Sections()) != 1 {
		t.Errorf("got %d sections, want 1", len(engine.Sections()))
	}
}

func TestPageSize(t *testing.T) {
	engine := NewEngine(NewMockHost())
	engine.SetPageSize(7)
	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	defer engine.Close()

	if err := engine.DoString("size", "grid.section{ count = grid.page_size }"); err != nil {
		t.Fatal(err)
	}
	if n, _ := engine.Sections()[0].RowCount(0); n != 7 {
		t.Errorf("RowCount() = %d, want 7", n)
	}
}

func TestDoFile(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "grid.lua")
	if err := os.WriteFile(path, []byte("grid.section{ header = 'File', items = {'x'} }"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := engine.DoFile(path); err != nil {
		t.Fatalf("DoFile() error: %v", err)
	}
	if len(engine.Sections()) != 1 {
		t.Errorf("got %d sections, want 1", len(engine.Sections()))
	}
	if err := engine.DoFile(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("DoFile() on a missing file should fail")
	}
}
