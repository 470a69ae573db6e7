package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/util"
	"github.com/drake/gridsource/ui/tui/widget"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print every resolved row of a data source",
	Long: `Resolve every section of a Lua script or YAML manifest and print the
result as a table: one line per header, row and footer with its
identifier and item. Placeholder rows print as <nil>.

Examples:
  gridsource dump produce.yaml

  # Fetch every page first
  gridsource dump --all fruit.lua`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

var (
	dumpAll   bool
	dumpWidth int
)

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVar(&dumpAll, "all", false, "load every page before printing")
	dumpCmd.Flags().IntVar(&dumpWidth, "width", 40, "truncate items to this many columns (0 for no limit)")
}

func runDump(cmd *cobra.Command, args []string) error {
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

	if dumpAll {
		if err := src.loadAll(); err != nil {
			return err
		}
	}

	rows, err := dumpRows(src.src)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SECTION", "ROW", "KIND", "MODE", "IDENTIFIER", "ITEM").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

// dumpRows resolves every decoration and row of src, 1-based.
func dumpRows(src *source.Grouped) ([][]string, error) {
	var rows [][]string
	item := func(v any) string {
		if v == nil {
			return "<nil>"
		}
		if dumpWidth > 0 {
			return util.Truncate(widget.Text(v), dumpWidth)
		}
		return widget.Text(v)
	}

	for s, list := range src.Sources() {
		section := strconv.Itoa(s + 1)
		mode := list.Content().Mode().String()
		path := source.IndexPath{Section: s}

		if e, ok, err := src.ResolveDecoration(source.KindHeader, path); err != nil {
			return nil, err
		} else if ok {
			rows = append(rows, []string{section, "", string(source.KindHeader), mode, e.Identifier, item(e.Item)})
		}

		n, err := src.RowCount(s)
		if err != nil {
			return nil, err
		}
		for r := 0; r < n; r++ {
			e, err := src.ResolveCell(source.IndexPath{Section: s, Row: r})
			if err != nil {
				return nil, err
			}
			kind := "row"
			if row, ok := list.LoadingRow(); ok && row == r {
				kind = "loading"
			}
			rows = append(rows, []string{section, strconv.Itoa(r + 1), kind, mode, e.Identifier, item(e.Item)})
		}

		if e, ok, err := src.ResolveDecoration(source.KindFooter, path); err != nil {
			return nil, err
		} else if ok {
			rows = append(rows, []string{section, "", string(source.KindFooter), mode, e.Identifier, item(e.Item)})
		}
	}
	return rows, nil
}
