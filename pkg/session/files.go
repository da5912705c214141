package session

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/inkpad/pkg/core"
	"github.com/aretw0/inkpad/pkg/notes"
)

// UntitledName names exported files of notes without a name.
const UntitledName = "Untitled"

// ImportExtensions are the file extensions accepted by Import.
var ImportExtensions = []string{".txt", ".md"}

// ErrNoClipboard is returned by Copy when no clipboard is configured.
var ErrNoClipboard = errors.New("no clipboard available")

// Clipboard receives copied note content.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// ExportOptions control a single-note export.
type ExportOptions struct {
	// Title becomes the file name. Defaults to the note name.
	Title string
	// Ext is appended when the title does not already end with it.
	// Defaults to the user's preferred file type.
	Ext string
	// FrontMatter prepends a YAML header with the title and tags.
	FrontMatter bool
}

// File is an exported artifact.
type File struct {
	Name string
	Data []byte
}

var filenameReplacer = strings.NewReplacer(
	"<", "-", ">", "-", ":", "-", `"`, "-", "/", "-",
	`\`, "-", "|", "-", "?", "-", "*", "-",
)

// SanitizeFilename replaces characters that are invalid in file names.
func SanitizeFilename(title string) string {
	return filenameReplacer.Replace(title)
}

// CheckImportable rejects files whose extension cannot be imported.
func CheckImportable(filename string) error {
	ext := filepath.Ext(filename)
	for _, ok := range ImportExtensions {
		if strings.EqualFold(ext, ok) {
			return nil
		}
	}
	return &core.UnsupportedFileError{Name: filepath.Base(filename), Ext: ext}
}

type importFrontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

type exportFrontMatter struct {
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags,omitempty"`
	Created time.Time `yaml:"created,omitempty"`
}

// Import creates a note from a .txt or .md file and makes it current.
// Other extensions are rejected and the collection is left untouched.
func (c *Controller) Import(filename string, r io.Reader) (core.Note, error) {
	seed, err := c.readImport(filename, r)
	if err != nil {
		return core.Note{}, err
	}
	n := c.repo.AddNote(&seed)
	c.logger.Debug("imported note", "file", filename, "id", n.ID)
	c.report(core.LevelInfo, "Imported "+filepath.Base(filename), nil)
	return n, nil
}

// ImportFile imports the file at path.
func (c *Controller) ImportFile(path string) (core.Note, error) {
	if err := c.checkImportable(path); err != nil {
		return core.Note{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Note{}, fmt.Errorf("import %s: %w", path, err)
	}
	defer f.Close()
	return c.Import(path, f)
}

// ImportPaths imports every file matching the glob patterns ("**" allowed)
// as one batch. Unsupported or unreadable files are skipped and reported;
// the returned error joins those failures.
func (c *Controller) ImportPaths(patterns []string) ([]core.Note, error) {
	var (
		seeds []notes.Seed
		errs  []error
		seen  = make(map[string]struct{})
	)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", pattern, err))
			continue
		}
		if len(matches) == 0 {
			errs = append(errs, fmt.Errorf("pattern %q: no matching files", pattern))
			continue
		}

		for _, path := range matches {
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}

			info, err := os.Stat(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if info.IsDir() {
				continue
			}

			seed, err := c.readImportFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			seeds = append(seeds, seed)
		}
	}

	created := c.repo.AddNotes(seeds)
	if len(created) > 0 {
		c.report(core.LevelInfo, fmt.Sprintf("Imported %d file(s)", len(created)), nil)
	}
	return created, errors.Join(errs...)
}

func (c *Controller) readImportFile(path string) (notes.Seed, error) {
	if err := c.checkImportable(path); err != nil {
		return notes.Seed{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return notes.Seed{}, fmt.Errorf("import %s: %w", path, err)
	}
	defer f.Close()
	return c.readImport(path, f)
}

func (c *Controller) readImport(filename string, r io.Reader) (notes.Seed, error) {
	if err := c.checkImportable(filename); err != nil {
		return notes.Seed{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return notes.Seed{}, fmt.Errorf("import %s: %w", filename, err)
	}

	base := filepath.Base(filename)
	seed := notes.Seed{
		Name:    strings.TrimSuffix(base, filepath.Ext(base)),
		Content: string(data),
	}

	if strings.EqualFold(filepath.Ext(filename), ".md") {
		var meta importFrontMatter
		body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
		if err != nil {
			c.logger.Debug("front matter ignored", "file", filename, "error", err)
			return seed, nil
		}
		seed.Content = string(body)
		if t := strings.TrimSpace(meta.Title); t != "" {
			seed.Name = t
		}
		seed.Tags = meta.Tags
	}
	return seed, nil
}

func (c *Controller) checkImportable(filename string) error {
	if err := CheckImportable(filename); err != nil {
		c.report(core.LevelError, "File not imported", err)
		return err
	}
	return nil
}

// Export renders a note as a downloadable file. Blank notes are refused.
func (c *Controller) Export(id string, opts ExportOptions) (File, error) {
	n, err := c.Note(id)
	if err != nil {
		return File{}, err
	}
	if strings.TrimSpace(n.Content) == "" {
		c.report(core.LevelWarning, "Nothing to export: the note is empty", core.ErrEmptyContent)
		return File{}, core.ErrEmptyContent
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = n.Name
	}
	ext := c.normalizeExt(opts.Ext)

	name := SanitizeFilename(title)
	if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		name += ext
	}

	data := []byte(n.Content)
	if opts.FrontMatter {
		data, err = withFrontMatter(n, title)
		if err != nil {
			return File{}, err
		}
	}
	return File{Name: name, Data: data}, nil
}

// ExportAll writes every note into a zip archive, one file per note named
// after the note. It returns the number of files written.
func (c *Controller) ExportAll(w io.Writer, ext string) (int, error) {
	ext = c.normalizeExt(ext)
	zw := zip.NewWriter(w)

	count := 0
	for _, n := range c.repo.List(notes.OrderInsertion) {
		name := n.Name
		if strings.TrimSpace(name) == "" {
			name = UntitledName
		}
		f, err := zw.Create(SanitizeFilename(name) + ext)
		if err != nil {
			zw.Close()
			return count, fmt.Errorf("export %s: %w", n.ID, err)
		}
		if _, err := io.WriteString(f, n.Content); err != nil {
			zw.Close()
			return count, fmt.Errorf("export %s: %w", n.ID, err)
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("finish archive: %w", err)
	}
	return count, nil
}

// Copy places a note's content on the clipboard. Blank notes are refused.
func (c *Controller) Copy(id string) error {
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(n.Content) == "" {
		c.report(core.LevelWarning, "Nothing to copy: the note is empty", core.ErrEmptyContent)
		return core.ErrEmptyContent
	}
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	if err := c.clipboard.WriteAll(n.Content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func (c *Controller) normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = c.Settings().Editor.DefaultFileType
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func withFrontMatter(n core.Note, title string) ([]byte, error) {
	header, err := yaml.Marshal(exportFrontMatter{
		Title:   title,
		Tags:    n.Tags,
		Created: n.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}
