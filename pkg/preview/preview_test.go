package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/pkg/preview"
)

func TestRender_HeadingIdsMatchTOCSlugs(t *testing.T) {
	r := preview.New()

	out, err := r.Render("# Hello, World!\n\n## Hello, World!\n")
	require.NoError(t, err)

	assert.Contains(t, out, `id="hello-world"`)
	assert.Contains(t, out, `id="hello-world-1"`)
}

func TestRender_GFMAndFootnotes(t *testing.T) {
	r := preview.New()

	out, err := r.Render("- [ ] task\n- [x] done\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\nsee[^1]\n\n[^1]: a note\n")
	require.NoError(t, err)

	assert.Contains(t, out, `type="checkbox"`)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "footnotes")
}

func TestRender_HighlightsFencedCode(t *testing.T) {
	r := preview.New()

	out, err := r.Render("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "func")
	assert.Contains(t, out, "<span", "tokens are wrapped for styling")
}

func TestRender_UnknownLanguageStillRenders(t *testing.T) {
	r := preview.New(preview.WithStyle("no-such-style"))

	out, err := r.Render("```nosuchlang\na < b\n```\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "a &lt; b")
}
