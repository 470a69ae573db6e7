package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/lua"
	"github.com/drake/gridsource/manifest"
	"github.com/drake/gridsource/source"
)

var errNoSource = errors.New("no source given: pass a .lua or .yaml file, or set source.script or source.manifest")

// Pager supplies the next page of a section after loaded items.
type Pager interface {
	LoadMore(section, loaded int) ([]any, bool, error)
}

// loaded is a data source read from a script or manifest.
type loaded struct {
	src      *source.Grouped
	pager    Pager
	onSelect func(path source.IndexPath, entry source.Entry) error
	freeze   func()
	close    func()
}

// luaHost routes script output to the log.
type luaHost struct {
	log *logging.Logger
}

func (h luaHost) Log(msg string) {
	h.log.Info(msg)
}

func (h luaHost) SectionChanged(section int) {
	h.log.Debug("section changed", "section", section)
}

// sourcePath picks the file to load: the argument, or the configured
// script or manifest.
func sourcePath(args []string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case cfg.Source.Script != "":
		return cfg.Source.Script, nil
	case cfg.Source.Manifest != "":
		return cfg.Source.Manifest, nil
	default:
		return "", errNoSource
	}
}

// loadSource reads path by extension.
func loadSource(path string, log *logging.Logger) (*loaded, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		engine := lua.NewEngine(luaHost{log: log.WithComponent("script")})
		engine.SetPageSize(cfg.Paging.PageSize)
		if err := engine.Init(); err != nil {
			return nil, err
		}
		if err := engine.DoFile(path); err != nil {
			engine.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return &loaded{
			src:      engine.Grouped(),
			pager:    engine,
			onSelect: engine.Select,
			freeze:   engine.Freeze,
			close:    engine.Close,
		}, nil

	case ".yaml", ".yml":
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		return &loaded{
			src:      m.Grouped(),
			pager:    m.Pager(),
			onSelect: func(source.IndexPath, source.Entry) error { return nil },
			freeze:   func() {},
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("%s: unknown source type, want .lua, .yaml or .yml", path)
	}
}

// loadAll pulls every remaining page into the lists. It is only safe while
// no UI is reading them.
func (l *loaded) loadAll() error {
	for s, list := range l.src.Sources() {
		for {
			row, ok := list.LoadingRow()
			if !ok {
				break
			}
			items, done, err := l.pager.LoadMore(s, row)
			if err != nil {
				return err
			}
			list.SetItems(append(list.Config().Items, items...))
			if done || len(items) == 0 {
				list.SetLoadingMore("")
			}
		}
	}
	return nil
}
