// Package inkpad is the composition root of a local-first Markdown notepad.
//
// It wires the note session (selection, settings, text expansion, file
// exchange) to a durable store using the ports in pkg/core. Every edit is
// applied in memory first and mirrored to the store by a background writer,
// so the editing surface never waits on disk.
//
// Features:
//
//   - **Slash commands**: a line such as `/table` or `/tlist` expands into a
//     Markdown snippet; `/toc` builds a table of contents.
//   - **Natural dates**: `[[next friday]]` becomes "April 11, 2025".
//   - **SQLite storage**: pure-Go driver, versioned schema, lazy settings.
//   - **Import and export**: `.md` and `.txt` files, YAML front matter,
//     zip archives of the whole collection.
//   - **Preview**: GitHub-flavored Markdown with highlighted code.
//
// Usage:
//
//	sess, err := inkpad.Open(ctx, "notes.db", inkpad.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer sess.Close(ctx)
//
//	res, err := sess.HandleChange(ctx, "Groceries\n/tlist", 16)
package inkpad
