package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkpad"
	"github.com/aretw0/inkpad/pkg/adapters/fs"
	"github.com/aretw0/inkpad/pkg/session"
)

var (
	exportTitle       string
	exportExt         string
	exportFrontMatter bool
	exportOut         string

	exportAllOut string
	exportAllExt string
)

var importCmd = &cobra.Command{
	Use:   "import <file|glob>...",
	Short: "Import .md and .txt files as notes",
	Long: `Import files as notes. Arguments may be doublestar globs such as
"notes/**/*.md". Markdown front matter supplies the title and tags.`,
	Args: cobra.MinimumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		imported, err := sess.ImportPaths(args)
		for _, n := range imported {
			fmt.Printf("%s  %s\n", n.ID, n.Name)
		}
		return err
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a note to a file (the current one by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		f, err := sess.Export(id, session.ExportOptions{
			Title:       exportTitle,
			Ext:         exportExt,
			FrontMatter: exportFrontMatter,
		})
		if err != nil {
			return err
		}

		if exportOut == "-" {
			_, err = os.Stdout.Write(f.Data)
			return err
		}
		path := f.Name
		if exportOut != "" {
			path = filepath.Join(exportOut, f.Name)
		}
		if err := fs.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}),
}

var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Export every note into a zip archive",
	Args:  cobra.NoArgs,
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		var n int
		err := fs.WriteStream(exportAllOut, 0o644, func(w io.Writer) error {
			var err error
			n, err = sess.ExportAll(w, exportAllExt)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Printf("%d notes written to %s\n", n, exportAllOut)
		return nil
	}),
}

var copyCmd = &cobra.Command{
	Use:   "copy [id]",
	Short: "Copy a note's content to the system clipboard",
	Args:  cobra.MaximumNArgs(1),
	Run: withSession(func(ctx context.Context, sess *inkpad.Session, args []string) error {
		id, err := noteID(sess, args)
		if err != nil {
			return err
		}
		return sess.Copy(id)
	}),
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd, exportAllCmd, copyCmd)

	exportCmd.Flags().StringVar(&exportTitle, "title", "", "File name (default: the note name)")
	exportCmd.Flags().StringVar(&exportExt, "ext", "", "File extension (default: the configured file type)")
	exportCmd.Flags().BoolVar(&exportFrontMatter, "front-matter", false, "Prepend a YAML header with title and tags")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output directory, or - for standard output")

	exportAllCmd.Flags().StringVarP(&exportAllOut, "output", "o", "inkpad-notes.zip", "Archive path")
	exportAllCmd.Flags().StringVar(&exportAllExt, "ext", "", "Extension of each entry (default: the configured file type)")
}
