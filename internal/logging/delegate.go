package logging

import (
	"fmt"

	"github.com/drake/gridsource/source"
)

// Delegate returns a source.Delegate that records every configured element
// at DEBUG level.
func (l *Logger) Delegate() source.Delegate {
	return source.DelegateFunc(func(el source.Configurable, path source.IndexPath) {
		l.Debug("element configured",
			"element", fmt.Sprintf("%T", el),
			"section", path.Section,
			"row", path.Row,
		)
	})
}
