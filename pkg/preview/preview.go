// Package preview renders note content as HTML.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/inkpad/pkg/toc"
)

// DefaultStyle is the chroma style used for fenced code.
const DefaultStyle = "github"

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	logger *slog.Logger
}

type config struct {
	style  string
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*config)

// WithStyle selects the chroma style for code blocks.
func WithStyle(name string) Option {
	return func(c *config) { c.style = name }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New builds a renderer with GFM, footnotes and highlighted code blocks.
// Heading ids use the same slugs as generated tables of contents.
func New(opts ...Option) *Renderer {
	cfg := config{style: DefaultStyle}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	style := styles.Get(cfg.style)
	if style == nil {
		style = styles.Fallback
	}
	code := &codeRenderer{
		style:     style,
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
		logger:    cfg.logger,
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(code, 200)),
		),
	)
	return &Renderer{md: md, logger: cfg.logger}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	if err := r.md.Convert([]byte(markdown), &buf, parser.WithContext(pctx)); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// slugIDs assigns heading ids with toc.Slug, suffixing repeats.
type slugIDs struct {
	seen map[string]int
}

func newSlugIDs() *slugIDs {
	return &slugIDs{seen: make(map[string]int)}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := toc.Slug(string(value))
	if slug == "" {
		slug = "heading"
	}
	n, dup := s.seen[slug]
	s.seen[slug] = n + 1
	if dup {
		slug = fmt.Sprintf("%s-%d", slug, n)
	}
	return []byte(slug)
}

func (s *slugIDs) Put(value []byte) {
	s.seen[string(value)]++
}

type codeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	logger    *slog.Logger
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lang := string(n.Language(source))
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code.String())
	if err == nil {
		err = r.formatter.Format(w, r.style, it)
	}
	if err != nil {
		r.logger.Debug("highlighting failed, rendering plain code", "lang", lang, "error", err)
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(html.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
	}
	return ast.WalkSkipChildren, nil
}
