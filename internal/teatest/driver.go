// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs the
// returned commands inline, feeding their messages back into the model.
// Commands that do not return within a few milliseconds (cursor blink
// timers) are dropped.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDepth bounds how many chained commands one message may trigger.
const MaxDepth = 64

const cmdTimeout = 10 * time.Millisecond

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Driver runs a tea.Model without a terminal.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set once the model returns tea.Quit.
	Quit bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before the test starts.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(d.Model.Init(), 0)
	return d
}

// Send delivers msg to the model. Messages after quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
}

// Press sends named keys ("enter", "down", "ctrl+c", ...) in order.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		kt, ok := namedKeys[k]
		if !ok {
			d.T.Fatalf("teatest: unknown key %q", k)
		}
		d.Send(tea.KeyMsg{Type: kt})
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View returns the rendered model with styling intact.
func (d *Driver) View() string {
	return d.Model.View()
}

// Plain returns the rendered model with ANSI escapes removed.
func (d *Driver) Plain() string {
	return ansiEscape.ReplaceAllString(d.Model.View(), "")
}

// Contains reports whether the plain view includes every substring.
func (d *Driver) Contains(subs ...string) bool {
	plain := d.Plain()
	for _, s := range subs {
		if !strings.Contains(plain, s) {
			return false
		}
	}
	return true
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= MaxDepth {
		d.T.Logf("teatest: command chain deeper than %d, stopping", MaxDepth)
		return
	}

	msg, ok := call(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			d.run(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

// call runs cmd, giving up after cmdTimeout.
func call(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
