package main_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildInkpad builds the CLI into dir and returns its path.
func buildInkpad(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "inkpad.exe")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build inkpad: %v\n%s", err, string(out))
	}
	return bin
}

type cli struct {
	t   *testing.T
	bin string
	db  string
	dir string
}

func newCLI(t *testing.T) *cli {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	dir := t.TempDir()
	return &cli{t: t, bin: buildInkpad(t, dir), db: filepath.Join(dir, "inkpad.db"), dir: dir}
}

// run executes the CLI and returns its standard output.
func (c *cli) run(stdin string, args ...string) string {
	c.t.Helper()
	out, errOut, err := c.exec(stdin, args...)
	require.NoError(c.t, err, "inkpad %s\nstderr: %s", strings.Join(args, " "), errOut)
	return out
}

func (c *cli) exec(stdin string, args ...string) (string, string, error) {
	cmd := exec.Command(c.bin, append([]string{"--db", c.db, "--quiet"}, args...)...)
	cmd.Dir = c.dir
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestCLI_EditExpandsAndPersists(t *testing.T) {
	c := newCLI(t)

	id := strings.TrimSpace(c.run("", "new", "--name", "Groceries"))
	require.NotEmpty(t, id)

	out := c.run("Groceries\n/tlist", "edit")
	assert.Equal(t, "Groceries\n- [ ] Task 1\n- [ ] Task 2\n", out)

	shown := c.run("", "show", id)
	assert.Equal(t, out, shown)

	list := c.run("", "list")
	assert.Contains(t, list, "* "+id+"  Groceries")
}

func TestCLI_TagsAndSearch(t *testing.T) {
	c := newCLI(t)

	id := strings.TrimSpace(c.run("", "new", "--name", "Work log", "--content", "standup notes"))
	c.run("", "tag", "work", id)
	c.run("", "new", "--name", "Shopping")

	found := c.run("", "search", "#work")
	assert.Contains(t, found, id)
	assert.NotContains(t, found, "Shopping")

	assert.Contains(t, c.run("", "tags"), "work")

	c.run("", "untag", "work", id)
	assert.Empty(t, strings.TrimSpace(c.run("", "search", "tag:work")))
}

func TestCLI_ExportAndImport(t *testing.T) {
	c := newCLI(t)

	c.run("", "new", "--name", "a/b", "--content", "# Title\n\nbody")
	outDir := t.TempDir()
	path := strings.TrimSpace(c.run("", "export", "-o", outDir, "--ext", "md"))
	assert.Equal(t, filepath.Join(outDir, "a-b.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", string(data))

	src := filepath.Join(outDir, "scan.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0o644))
	_, _, err = c.exec("", "import", src)
	assert.Error(t, err, "unsupported files are rejected")

	imported := c.run("", "import", filepath.Join(outDir, "*.md"))
	assert.Contains(t, imported, "a-b")
}

func TestCLI_Settings(t *testing.T) {
	c := newCLI(t)

	c.run("", "settings", "set", "defaultNoteName=Scratch", "showRecentNotes=false")
	out := c.run("", "settings", "show")
	assert.Contains(t, out, "defaultNoteName: Scratch")
	assert.Contains(t, out, "showRecentNotes: false")

	_, _, err := c.exec("", "settings", "set", "colour=blue")
	assert.Error(t, err)
}

func TestCLI_Status(t *testing.T) {
	c := newCLI(t)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.run("", "status")), &state))
	assert.Contains(t, state, "repository")
	assert.Contains(t, state, "store")
}

func TestCLI_RemoveLastNoteLeavesFreshOne(t *testing.T) {
	c := newCLI(t)

	c.run("", "rm")
	list := strings.TrimSpace(c.run("", "list"))
	assert.Len(t, strings.Split(list, "\n"), 1)
}
