package expand_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/pkg/expand"
)

// fixedDates resolves only the expressions it knows about.
func fixedDates(known map[string]time.Time) expand.DateParser {
	return expand.DateParserFunc(func(expr string, _ time.Time) (time.Time, bool) {
		t, ok := known[strings.ToLower(strings.TrimSpace(expr))]
		return t, ok
	})
}

func newEngine(known map[string]time.Time) *expand.Engine {
	now := time.Date(2025, time.April, 6, 10, 0, 0, 0, time.UTC)
	return expand.New(
		expand.WithDateParser(fixedDates(known)),
		expand.WithClock(func() time.Time { return now }),
	)
}

var april7 = time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)

func TestExpand_BracketDate(t *testing.T) {
	e := newEngine(map[string]time.Time{"next monday": april7})
	text := "Meet me [[next monday]]"

	res := e.Expand(text, len(text))

	assert.Equal(t, "Meet me April 7, 2025", res.Text)
	assert.Equal(t, len(res.Text), res.Caret)
	assert.Equal(t, 1, res.Dates)
	assert.Empty(t, res.Command)
}

func TestExpand_UnparseableDateIsLeftAlone(t *testing.T) {
	e := newEngine(nil)
	text := "see [[whenever]] ok"

	res := e.Expand(text, 3)

	assert.Equal(t, text, res.Text)
	assert.Equal(t, 3, res.Caret)
	assert.False(t, res.Expanded())
}

func TestExpand_MultipleDatesAndCaretShift(t *testing.T) {
	e := newEngine(map[string]time.Time{
		"a": time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		"b": time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
	})
	text := "[[a]] and [[b]]\nthen [[a]]"
	// caret right after "and " on the first line
	caret := strings.Index(text, "[[b]]")

	res := e.Expand(text, caret)

	assert.Equal(t, "March 14, 2025 and December 25, 2024\nthen March 14, 2025", res.Text)
	assert.Equal(t, 3, res.Dates)
	// only the first substitution happened before the caret
	assert.Equal(t, strings.Index(res.Text, "December"), res.Caret)
}

func TestExpand_CaretInsideExpression(t *testing.T) {
	e := newEngine(map[string]time.Time{"x": april7})
	text := "go [[x]] now"

	res := e.Expand(text, 5)

	assert.Equal(t, "go April 7, 2025 now", res.Text)
	assert.Equal(t, len("go April 7, 2025"), res.Caret)
}

func TestExpand_TaskListAlias(t *testing.T) {
	e := newEngine(nil)

	res := e.Expand("/tlist", 6)

	assert.Equal(t, "- [ ] Task 1\n- [ ] Task 2", res.Text)
	assert.Equal(t, len(res.Text), res.Caret)
	assert.Equal(t, "tasklist", res.Command)
}

func TestExpand_CommandOnLaterLine(t *testing.T) {
	e := newEngine(nil)
	text := "intro\n  /HR  \ntail"

	res := e.Expand(text, len(text))

	assert.Equal(t, "intro\n---\ntail", res.Text)
	assert.Equal(t, len("intro\n---"), res.Caret)
	assert.Equal(t, "line", res.Command)
}

func TestExpand_UnknownCommandIsLeftAsTyped(t *testing.T) {
	e := newEngine(nil)
	text := "/usr/bin is a path\n/quote"

	res := e.Expand(text, 0)

	assert.Equal(t, "/usr/bin is a path\n> Quote text", res.Text, "unknown tokens are skipped, the next command line expands")
	assert.Equal(t, "quote", res.Command)
}

func TestExpand_OnlyFirstCommandPerEvent(t *testing.T) {
	e := newEngine(nil)

	res := e.Expand("/line\n/line", 0)

	assert.Equal(t, "---\n/line", res.Text)
	assert.Equal(t, 3, res.Caret)
}

func TestExpand_DateCommandUsesClock(t *testing.T) {
	e := newEngine(nil)

	res := e.Expand("Today: \n/date", 0)

	assert.Equal(t, "Today: \nApril 6, 2025", res.Text)
}

func TestExpand_TOCCommand(t *testing.T) {
	e := newEngine(nil)
	text := "/toc\n# A\n## B\n# C"

	res := e.Expand(text, 4)

	assert.Equal(t, "- [A](#a)\n  - [B](#b)\n- [C](#c)\n# A\n## B\n# C", res.Text)
	assert.Equal(t, len("- [A](#a)\n  - [B](#b)\n- [C](#c)"), res.Caret)
	assert.Equal(t, "toc", res.Command)
}

func TestExpand_DatesThenCommand(t *testing.T) {
	e := newEngine(map[string]time.Time{"tomorrow": april7})
	text := "due [[tomorrow]]\n/code"

	res := e.Expand(text, len(text))

	assert.Equal(t, "due April 7, 2025\n```\ncode here\n```", res.Text)
	assert.Equal(t, 1, res.Dates)
	assert.Equal(t, "code", res.Command)
	assert.Equal(t, len(res.Text), res.Caret)
}

func TestExpand_ClampsCaret(t *testing.T) {
	e := newEngine(nil)

	res := e.Expand("plain", 99)

	assert.Equal(t, 5, res.Caret)
}

func TestExpand_ExpansionsNeverRetrigger(t *testing.T) {
	e := newEngine(nil)

	for _, cmd := range e.Registry().Commands() {
		names := append([]string{cmd.Name}, cmd.Aliases...)
		for _, name := range names {
			t.Run(name, func(t *testing.T) {
				first := e.Expand("/"+name+"\n# Heading", 0)
				require.Equal(t, cmd.Name, first.Command)

				again := e.Expand(first.Text, first.Caret)
				assert.Empty(t, again.Command, "expansion of %s must not start a new command line", name)
				assert.Equal(t, first.Text, again.Text)
			})
		}
	}
}

func TestExpandDates_Only(t *testing.T) {
	e := newEngine(map[string]time.Time{"x": april7})

	res := e.ExpandDates("[[x]]\n/line", 0)

	assert.Equal(t, "April 7, 2025\n/line", res.Text)
	assert.Empty(t, res.Command)
}

func TestNaturalDates_Tomorrow(t *testing.T) {
	p := expand.NewNaturalDates()
	base := time.Date(2025, time.April, 6, 9, 0, 0, 0, time.UTC)

	got, ok := p.ParseDate("tomorrow", base)

	require.True(t, ok)
	assert.Equal(t, "April 7, 2025", expand.FormatDate(got))
}

func TestNaturalDates_Gibberish(t *testing.T) {
	p := expand.NewNaturalDates()

	_, ok := p.ParseDate("zzqx flarb", time.Now())
	assert.False(t, ok)

	_, ok = p.ParseDate("   ", time.Now())
	assert.False(t, ok)
}
