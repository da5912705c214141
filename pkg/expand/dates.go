package expand

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout renders dates as "March 14, 2025".
const DateLayout = "January 2, 2006"

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateParser turns a natural-language expression into a date relative to base.
type DateParser interface {
	ParseDate(expr string, base time.Time) (time.Time, bool)
}

// DateParserFunc adapts a function to DateParser.
type DateParserFunc func(expr string, base time.Time) (time.Time, bool)

func (f DateParserFunc) ParseDate(expr string, base time.Time) (time.Time, bool) {
	return f(expr, base)
}

// NaturalDates parses English expressions such as "tomorrow" or
// "next friday".
type NaturalDates struct {
	parser *when.Parser
}

// NewNaturalDates returns a parser loaded with the English and common rules.
func NewNaturalDates() *NaturalDates {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &NaturalDates{parser: w}
}

func (n *NaturalDates) ParseDate(expr string, base time.Time) (time.Time, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, false
	}
	r, err := n.parser.Parse(expr, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}
