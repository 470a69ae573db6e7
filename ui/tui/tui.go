package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/gridsource/event"
	"github.com/drake/gridsource/internal/buffer"
	"github.com/drake/gridsource/internal/logging"
)

// ErrNotRunning is returned when a Program is used before Run.
var ErrNotRunning = errors.New("program is not running")

// Program runs a Bubble Tea model and bridges it to a host goroutine:
// the host reads Events and answers LoadMore events with AppendItems.
type Program struct {
	program *tea.Program
	model   tea.Model
	opts    []tea.ProgramOption

	// Message queue - buffered channel drained by a single goroutine.
	// This decouples callers from tea.Program.Send() which can block.
	msgQueue chan tea.Msg

	// Outbound events from the model, buffered so Update never waits on
	// the host.
	events   <-chan event.Event
	eventsIn chan<- event.Event

	// Shutdown coordination
	done     chan struct{}
	doneOnce sync.Once
	log      *logging.Logger
}

// ModelFunc builds the model, given the channel it should send events on.
type ModelFunc func(outbound chan<- event.Event) tea.Model

// NewProgram creates a program for the model built by newModel.
func NewProgram(newModel ModelFunc, log *logging.Logger, opts ...tea.ProgramOption) *Program {
	if log == nil {
		log = logging.NopLogger()
	}
	log = log.WithComponent("program")

	in, out := buffer.Unbounded[event.Event](64, 10000, log)
	return &Program{
		model:    newModel(in),
		opts:     opts,
		msgQueue: make(chan tea.Msg, 1024),
		events:   out,
		eventsIn: in,
		done:     make(chan struct{}),
		log:      log,
	}
}

// Events returns the channel of UI events. It is closed after Run returns
// and every pending event has been delivered.
func (p *Program) Events() <-chan event.Event {
	return p.events
}

// send queues a message for delivery to the Bubble Tea program.
// Blocks until message is queued - never drops messages.
func (p *Program) send(msg tea.Msg) {
	select {
	case <-p.done:
		return
	case p.msgQueue <- msg:
	}
}

// AppendItems delivers a page of items for section.
func (p *Program) AppendItems(section int, items []any, done bool) {
	p.send(AppendItemsMsg{Section: section, Items: items, Done: done})
}

// LoadFailed reports a failed page load for section.
func (p *Program) LoadFailed(section int, err error) {
	p.send(LoadFailedMsg{Section: section, Err: err})
}

// Reload asks the model to re-query its source.
func (p *Program) Reload() {
	p.send(ReloadMsg{})
}

// Run starts the TUI and blocks until exit.
func (p *Program) Run() error {
	p.program = tea.NewProgram(p.model, p.opts...)

	// Single goroutine drains message queue to Bubble Tea.
	// This can block on Send() without affecting producers.
	go func() {
		for {
			select {
			case <-p.done:
				return
			case msg := <-p.msgQueue:
				p.program.Send(msg)
			}
		}
	}()

	p.log.Info("program started")
	_, err := p.program.Run()
	p.log.Info("program stopped", "error", err)

	p.doneOnce.Do(func() {
		close(p.done)
	})
	close(p.eventsIn)

	return err
}

// Done returns a channel that closes when the UI exits.
func (p *Program) Done() <-chan struct{} {
	return p.done
}

// Quit signals the TUI to exit.
func (p *Program) Quit() error {
	if p.program == nil {
		return ErrNotRunning
	}
	p.program.Quit()
	return nil
}
