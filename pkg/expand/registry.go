package expand

import (
	"sort"
	"strings"
	"time"

	"github.com/aretw0/inkpad/pkg/toc"
)

// Context is what an expansion template can see.
type Context struct {
	// Text is the full note text at the time of expansion.
	Text string
	Now  time.Time
}

// Command is one slash command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Expand      func(Context) string
}

// Registry maps canonical command names to commands.
// It is fixed after construction and safe for concurrent reads.
type Registry struct {
	byName  map[string]Command
	aliases map[string]map[string]struct{}
	names   []string
}

// NewRegistry builds a registry from commands. Names and aliases are
// matched case-insensitively.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{
		byName:  make(map[string]Command, len(commands)),
		aliases: make(map[string]map[string]struct{}, len(commands)),
	}
	for _, c := range commands {
		name := strings.ToLower(c.Name)
		set := make(map[string]struct{}, len(c.Aliases))
		for _, a := range c.Aliases {
			set[strings.ToLower(a)] = struct{}{}
		}
		if _, dup := r.byName[name]; !dup {
			r.names = append(r.names, name)
		}
		r.byName[name] = c
		r.aliases[name] = set
	}
	return r
}

// Lookup resolves a token against canonical names first, then aliases.
func (r *Registry) Lookup(token string) (Command, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return Command{}, false
	}
	if c, ok := r.byName[token]; ok {
		return c, true
	}
	for _, name := range r.names {
		if _, ok := r.aliases[name][token]; ok {
			return r.byName[name], true
		}
	}
	return Command{}, false
}

// Commands lists the registered commands sorted by name.
func (r *Registry) Commands() []Command {
	names := append([]string(nil), r.names...)
	sort.Strings(names)
	out := make([]Command, 0, len(names))
	for _, n := range names {
		out = append(out, r.byName[n])
	}
	return out
}

func static(s string) func(Context) string {
	return func(Context) string { return s }
}

// DefaultCommands is the built-in command set.
func DefaultCommands() []Command {
	return []Command{
		{
			Name:        "table",
			Aliases:     []string{"tbl", "grid"},
			Description: "Three-column Markdown table",
			Expand: static("| Header 1 | Header 2 | Header 3 |\n" +
				"| -------- | -------- | -------- |\n" +
				"| Cell 1   | Cell 2   | Cell 3   |\n" +
				"| Cell 4   | Cell 5   | Cell 6   |"),
		},
		{
			Name:        "list",
			Aliases:     []string{"ul", "l"},
			Description: "Unordered list",
			Expand:      static("- Item 1\n- Item 2\n- Item 3"),
		},
		{
			Name:        "numberedlist",
			Aliases:     []string{"nlist", "ol", "numbered"},
			Description: "Numbered list",
			Expand:      static("1. First item\n2. Second item\n3. Third item"),
		},
		{
			Name:        "bulletlist",
			Aliases:     []string{"blist", "bullets", "bullet"},
			Description: "Bulleted list",
			Expand:      static("* Item 1\n* Item 2\n* Item 3"),
		},
		{
			Name:        "tasklist",
			Aliases:     []string{"tlist", "todo", "tasks", "checklist"},
			Description: "Task list with checkboxes",
			Expand:      static("- [ ] Task 1\n- [ ] Task 2"),
		},
		{
			Name:        "code",
			Aliases:     []string{"codeblock", "cb"},
			Description: "Fenced code block",
			Expand:      static("```\ncode here\n```"),
		},
		{
			Name:        "quote",
			Aliases:     []string{"blockquote", "bq"},
			Description: "Block quote",
			Expand:      static("> Quote text"),
		},
		{
			Name:        "image",
			Aliases:     []string{"img", "picture"},
			Description: "Image link",
			Expand:      static("![Alt text](https://example.com/image.png)"),
		},
		{
			Name:        "link",
			Aliases:     []string{"url", "href"},
			Description: "Hyperlink",
			Expand:      static("[Link text](https://example.com)"),
		},
		{
			Name:        "video",
			Aliases:     []string{"vid", "youtube"},
			Description: "Embedded video thumbnail link",
			Expand:      static("[![Video title](https://img.youtube.com/vi/VIDEO_ID/0.jpg)](https://www.youtube.com/watch?v=VIDEO_ID)"),
		},
		{
			Name:        "line",
			Aliases:     []string{"hr", "divider", "separator"},
			Description: "Horizontal rule",
			Expand:      static("---"),
		},
		{
			Name:        "footnote",
			Aliases:     []string{"fn", "ref"},
			Description: "Footnote reference and definition",
			Expand:      static("Text with a footnote.[^1]\n\n[^1]: Footnote text."),
		},
		{
			Name:        "metadata",
			Aliases:     []string{"meta", "frontmatter"},
			Description: "YAML front matter block",
			Expand:      static("---\ntitle: Title\nauthor: Author\ntags: []\n---"),
		},
		{
			Name:        "toc",
			Aliases:     []string{"contents"},
			Description: "Table of contents of the headings below this line",
			Expand:      func(c Context) string { return toc.Generate(c.Text) },
		},
		{
			Name:        "date",
			Aliases:     []string{"today", "now"},
			Description: "Today's date",
			Expand:      func(c Context) string { return FormatDate(c.Now) },
		},
	}
}

// DefaultRegistry returns a registry holding DefaultCommands.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultCommands()...)
}
