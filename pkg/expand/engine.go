// Package expand rewrites editor input: bracketed date expressions become
// calendar dates and slash-command lines become their expansions.
package expand

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// bracketRe never crosses a newline, so matching the whole text is the same
// as matching it line by line.
var bracketRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

// Result is the outcome of one change event.
// Caret is a byte offset into Text.
type Result struct {
	Text  string
	Caret int
	// Command is the canonical name of the expanded command, if any.
	Command string
	// Dates counts the bracket expressions that were replaced.
	Dates int
}

// Expanded reports whether anything was substituted.
func (r Result) Expanded() bool {
	return r.Command != "" || r.Dates > 0
}

// Engine applies bracket-date substitution and then slash-command expansion.
type Engine struct {
	registry *Registry
	dates    DateParser
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the default command set.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithDateParser replaces the natural-language date parser.
func WithDateParser(p DateParser) Option {
	return func(e *Engine) { e.dates = p }
}

// WithClock sets the time source used for relative dates and /date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine with the default registry and date parser.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.dates == nil {
		e.dates = NewNaturalDates()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Registry returns the command registry in use.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Expand processes the full text of a note after an edit that left the caret
// at caret. Dates are substituted first; then the first line holding a known
// command is replaced. Unknown commands and unparseable dates are left as typed.
func (e *Engine) Expand(text string, caret int) Result {
	caret = clamp(caret, 0, len(text))
	now := e.now()

	text, caret, n := e.expandDates(text, caret, now)
	res := Result{Text: text, Caret: caret, Dates: n}

	if out, pos, name, ok := e.expandCommand(text, now); ok {
		res.Text = out
		res.Caret = pos
		res.Command = name
	}
	if res.Expanded() {
		e.logger.Debug("expanded input", "command", res.Command, "dates", res.Dates)
	}
	return res
}

// ExpandDates applies only the bracket-date substitution.
func (e *Engine) ExpandDates(text string, caret int) Result {
	caret = clamp(caret, 0, len(text))
	out, pos, n := e.expandDates(text, caret, e.now())
	return Result{Text: out, Caret: pos, Dates: n}
}

func (e *Engine) expandDates(text string, caret int, now time.Time) (string, int, int) {
	matches := bracketRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, caret, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	shift := 0
	newCaret := -1
	replaced := 0

	for _, m := range matches {
		start, end := m[0], m[1]
		inner := text[m[2]:m[3]]
		t, ok := e.dates.ParseDate(inner, now)
		if !ok {
			continue
		}
		repl := FormatDate(t)

		b.WriteString(text[prev:start])
		b.WriteString(repl)
		prev = end
		replaced++

		switch {
		case end <= caret:
			shift += len(repl) - (end - start)
		case start < caret:
			// caret was inside the expression
			newCaret = b.Len()
		}
	}
	b.WriteString(text[prev:])

	if newCaret < 0 {
		newCaret = caret + shift
	}
	return b.String(), newCaret, replaced
}

func (e *Engine) expandCommand(text string, now time.Time) (string, int, string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "/") {
			continue
		}
		cmd, ok := e.registry.Lookup(trimmed[1:])
		if !ok {
			continue
		}

		expansion := cmd.Expand(Context{Text: text, Now: now})
		before := strings.Join(lines[:i], "\n")
		pos := len(before)
		if i > 0 {
			pos++ // newline joining the previous line
		}
		pos += len(expansion)

		lines[i] = expansion
		return strings.Join(lines, "\n"), pos, cmd.Name, true
	}
	return "", 0, "", false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
