package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/drake/gridsource/event"
	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui"
	"github.com/drake/gridsource/ui/tui/style"
	"github.com/drake/gridsource/ui/tui/widget"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Show a data source in the terminal",
	Long: `Show every section of a Lua script or YAML manifest as a scrollable
list. Loading rows fetch the next page when they come on screen.

Keys:
  up/k, down/j   move
  pgup, pgdn     move by a screen
  g, G           first, last row
  /              filter the current section (esc clears)
  enter          select
  q              quit

Examples:
  # Browse a manifest
  gridsource view produce.yaml

  # Print the selected item and exit
  gridsource view --pick fruit.lua

  # Show one section with the list's built-in filtering and help
  gridsource view --section 2 produce.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

var (
	viewSection int
	viewPick    bool
	viewInline  bool
	viewTheme   string
)

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().IntVar(&viewSection, "section", 0, "show only this section (1-based)")
	viewCmd.Flags().BoolVar(&viewPick, "pick", false, "exit on the first selection and print the item")
	viewCmd.Flags().BoolVar(&viewInline, "inline", false, "draw below the prompt instead of using the alternate screen")
	viewCmd.Flags().StringVar(&viewTheme, "theme", "", "color theme (default/mono), overrides ui.theme")
}

func runView(cmd *cobra.Command, args []string) error {
	path, err := sourcePath(args)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	src, err := loadSource(path, log)
	if err != nil {
		return err
	}
	defer src.close()

	theme := cfg.UI.Theme
	if viewTheme != "" {
		theme = viewTheme
	}
	styles, err := style.ForTheme(theme)
	if err != nil {
		return err
	}

	registry := widget.NewRegistry(cfg.UI.PoolSize, log)
	widget.RegisterDefaults(registry, src.src.Sources())
	for _, l := range src.src.Sources() {
		l.SetDelegate(log.Delegate())
	}

	var opts []tea.ProgramOption
	if !viewInline {
		opts = append(opts, tea.WithAltScreen())
	}

	var newModel tui.ModelFunc
	if viewSection > 0 {
		if viewSection > src.src.SectionCount() {
			return fmt.Errorf("--section %d: source has %d sections", viewSection, src.src.SectionCount())
		}
		if err := src.loadAll(); err != nil {
			return err
		}
		m, err := tui.NewSectionModel(src.src, viewSection-1, registry, styles, nil)
		if err != nil {
			return fmt.Errorf("--section %d: %w", viewSection, err)
		}
		newModel = func(out chan<- event.Event) tea.Model {
			return m.WithOutbound(out)
		}
	} else {
		tuiOpts := tui.DefaultOptions()
		tuiOpts.MaxVisible = cfg.UI.MaxVisible
		tuiOpts.ShowStatus = cfg.UI.ShowStatus
		tuiOpts.Styles = styles
		newModel = func(out chan<- event.Event) tea.Model {
			return tui.NewModel(src.src, registry, tuiOpts, out, log)
		}
	}

	// From here on the lists belong to the UI goroutine.
	src.freeze()
	program := tui.NewProgram(newModel, log, opts...)

	picked := make(chan source.Entry, 1)
	go serveEvents(program, src, log, picked)

	if err := program.Run(); err != nil {
		return err
	}

	select {
	case entry := <-picked:
		fmt.Fprintln(cmd.OutOrStdout(), widget.Text(entry.Item))
	default:
	}
	return nil
}

// serveEvents answers UI events until the program exits. It is the only
// goroutine that calls into the pager and the select handler.
func serveEvents(p *tui.Program, src *loaded, log *logging.Logger, picked chan<- source.Entry) {
	for ev := range p.Events() {
		switch ev.Type {
		case event.LoadMore:
			// The loading row sits right after the loaded items.
			items, done, err := src.pager.LoadMore(ev.Path.Section, ev.Path.Row)
			if err != nil {
				log.Error("load more failed", "section", ev.Path.Section, "error", err)
				p.LoadFailed(ev.Path.Section, err)
				continue
			}
			p.AppendItems(ev.Path.Section, items, done || len(items) == 0)

		case event.Selected:
			log.Info("selected", "section", ev.Path.Section, "row", ev.Path.Row, "identifier", ev.Entry.Identifier)
			if err := src.onSelect(ev.Path, ev.Entry); err != nil {
				log.Error("select handler failed", "error", err)
			}
			if viewPick {
				select {
				case picked <- ev.Entry:
				default:
				}
				if err := p.Quit(); err != nil {
					log.Warn("quit failed", "error", err)
				}
			}
		}
	}
}
