package expand_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/inkpad/pkg/expand"
)

func TestDefaultRegistry_HasRequiredCommands(t *testing.T) {
	r := expand.DefaultRegistry()

	for _, name := range []string{
		"table", "list", "numberedlist", "bulletlist", "tasklist", "code", "quote",
		"image", "link", "video", "line", "footnote", "metadata", "toc", "date",
	} {
		c, ok := r.Lookup(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, name, c.Name)
		}
	}
}

func TestRegistry_LookupAliasesCaseInsensitive(t *testing.T) {
	r := expand.DefaultRegistry()

	c, ok := r.Lookup("TLIST")
	assert.True(t, ok)
	assert.Equal(t, "tasklist", c.Name)

	c, ok = r.Lookup("contents")
	assert.True(t, ok)
	assert.Equal(t, "toc", c.Name)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)
	_, ok = r.Lookup("")
	assert.False(t, ok)
}

func TestRegistry_CanonicalNameWinsOverAlias(t *testing.T) {
	r := expand.NewRegistry(
		expand.Command{Name: "alpha", Aliases: []string{"beta"}, Expand: func(expand.Context) string { return "A" }},
		expand.Command{Name: "beta", Expand: func(expand.Context) string { return "B" }},
	)

	c, ok := r.Lookup("beta")
	assert.True(t, ok)
	assert.Equal(t, "beta", c.Name)
}

func TestRegistry_NoExpansionStartsWithSlash(t *testing.T) {
	ctx := expand.Context{Text: "/toc\n# A"}
	for _, c := range expand.DefaultRegistry().Commands() {
		out := c.Expand(ctx)
		for _, line := range strings.Split(out, "\n") {
			assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "/"), "%s expands to a slash line", c.Name)
		}
	}
}

func TestRegistry_CommandsSorted(t *testing.T) {
	cmds := expand.DefaultRegistry().Commands()

	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
}
