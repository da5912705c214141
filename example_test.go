package inkpad_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/inkpad"
)

// Example_basic opens a session, types a slash command and reads the result.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "inkpad-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	sess, err := inkpad.Open(ctx, filepath.Join(tmpDir, "inkpad.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer sess.Close(ctx)

	text := "Groceries\n/tlist"
	res, err := sess.HandleChange(ctx, text, len(text))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Command)
	fmt.Println(res.Text)
	// Output:
	// tasklist
	// Groceries
	// - [ ] Task 1
	// - [ ] Task 2
}

// Example_dates shows bracketed dates resolved against the session clock.
func Example_dates() {
	tmpDir, err := os.MkdirTemp("", "inkpad-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	now := time.Date(2025, time.April, 6, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	sess, err := inkpad.Open(ctx, filepath.Join(tmpDir, "inkpad.db"),
		inkpad.WithClock(func() time.Time { return now }),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer sess.Close(ctx)

	res, err := sess.HandleChange(ctx, "Call mom [[tomorrow]]", 0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Text)
	// Output:
	// Call mom April 7, 2025
}
