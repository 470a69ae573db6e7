package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/drake/gridsource/source"
)

// chunkCacheSize is the number of compiled chunks kept across VM resets.
const chunkCacheSize = 64

// DefaultPageSize is exposed to scripts as grid.page_size.
const DefaultPageSize = 25

// ErrNotInitialized is returned when the engine is used before Init.
var ErrNotInitialized = errors.New("lua engine not initialized")

// Engine wraps gopher-lua and builds data sources from scripts.
// Scripts describe sections with grid.section{...} and may register
// callbacks for paging and selection. Engine is not safe for concurrent
// use; call it from a single goroutine.
type Engine struct {
	L          *glua.LState
	chunkCache *lru.Cache[string, *glua.FunctionProto]

	// Cached table reference
	gridTable *glua.LTable

	// Host interface for communication with the rest of the system
	host     Host
	pageSize int

	// State built by the script
	sections   []*source.List
	frozen     bool
	onLoadMore *glua.LFunction
	onSelect   *glua.LFunction
}

// NewEngine creates an Engine with the given Host.
func NewEngine(host Host) *Engine {
	cache, _ := lru.New[string, *glua.FunctionProto](chunkCacheSize)
	return &Engine{
		chunkCache: cache,
		host:       host,
		pageSize:   DefaultPageSize,
	}
}

// SetPageSize sets grid.page_size for scripts loaded after the next Init.
func (e *Engine) SetPageSize(n int) {
	if n > 0 {
		e.pageSize = n
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// It registers the API but does NOT load any scripts - that's the caller's job.
// Compiled chunks survive re-initialization.
func (e *Engine) Init() error {
	// Close old Lua state if it exists
	if e.L != nil {
		e.L.Close()
	}

	// Create fresh Lua state
	e.L = glua.NewState()

	// Drop everything the previous script built
	e.sections = nil
	e.frozen = false
	e.onLoadMore = nil
	e.onSelect = nil

	// Register API functions
	e.registerAPIs()

	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	e.onLoadMore = nil
	e.onSelect = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// --- Execution Primitives (Mechanism) ---

// compile returns the compiled chunk for code, from the cache when the same
// name and code were compiled before.
func (e *Engine) compile(name, code string) (*glua.FunctionProto, error) {
	key := name + "\x00" + code
	if proto, ok := e.chunkCache.Get(key); ok {
		return proto, nil
	}

	chunk, err := parse.Parse(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	proto, err := glua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	e.chunkCache.Add(key, proto)
	return proto, nil
}

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	proto, err := e.compile(name, code)
	if err != nil {
		return err
	}
	e.L.Push(e.L.NewFunctionFromProto(proto))
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	newPath := dir + "/?.lua;" + oldPath
	e.L.SetField(pkg, "path", glua.LString(newPath))

	err = e.DoString(absPath, string(code))

	// Restore original path
	e.L.SetField(pkg, "path", glua.LString(oldPath))

	return err
}

// --- Built state ---

// Sections returns the lists declared by the script, in declaration order.
func (e *Engine) Sections() []*source.List {
	return e.sections
}

// Freeze makes the declared sections read-only for scripts. Call it once
// the lists are handed to a UI running on another goroutine; from then on
// new items reach the lists only through pages returned by LoadMore.
func (e *Engine) Freeze() {
	e.frozen = true
}

// Grouped returns a composite source over the declared sections.
func (e *Engine) Grouped() *source.Grouped {
	return source.NewGrouped(e.sections...)
}

// --- Callbacks ---

// LoadMore asks the script for the next page of section (0-based) after
// loaded items. The handler receives the 1-based section and loaded, and
// returns a table of items and a done flag. Without a handler the section
// is reported done.
func (e *Engine) LoadMore(section, loaded int) ([]any, bool, error) {
	if e.L == nil {
		return nil, false, ErrNotInitialized
	}
	if section < 0 || section >= len(e.sections) {
		return nil, false, &source.RangeError{Axis: source.AxisSection, Index: section, Count: len(e.sections)}
	}
	if e.onLoadMore == nil {
		return nil, true, nil
	}

	if err := e.L.CallByParam(glua.P{
		Fn:      e.onLoadMore,
		NRet:    2,
		Protect: true,
	}, glua.LNumber(section+1), glua.LNumber(loaded)); err != nil {
		return nil, false, fmt.Errorf("on_load_more(%d): %w", section+1, err)
	}

	done := e.L.Get(-1)
	page := e.L.Get(-2)
	e.L.Pop(2)

	var items []any
	switch v := page.(type) {
	case *glua.LTable:
		items = arrayToGo(v)
	case *glua.LNilType:
	default:
		return nil, false, fmt.Errorf("on_load_more(%d): expected table, got %s", section+1, page.Type())
	}

	return items, glua.LVAsBool(done), nil
}

// Select reports a chosen row to the script's on_select handler with
// 1-based section and row, the item and its identifier.
func (e *Engine) Select(path source.IndexPath, entry source.Entry) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	if e.onSelect == nil {
		return nil
	}

	if err := e.L.CallByParam(glua.P{
		Fn:      e.onSelect,
		NRet:    0,
		Protect: true,
	}, glua.LNumber(path.Section+1), glua.LNumber(path.Row+1), toLua(e.L, entry.Item), glua.LString(entry.Identifier)); err != nil {
		return fmt.Errorf("on_select(%d, %d): %w", path.Section+1, path.Row+1, err)
	}
	return nil
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.gridTable = e.L.NewTable()
	e.L.SetGlobal("grid", e.gridTable)
	e.L.SetField(e.gridTable, "page_size", glua.LNumber(e.pageSize))

	e.registerGridFuncs()
}

// --- Private Helpers ---

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
