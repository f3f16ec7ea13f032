package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const helpText = "Available commands: add, edit, delete, (l)ist, show, stats, theme, language, settings, reset, backup, restore, exit"

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	remoteContent() (string, bool)
	prompt() string

	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Stats(ctx context.Context) error
	Theme(ctx context.Context) error
	Language(ctx context.Context) error
	Settings(ctx context.Context) error
	Reset(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the user
// types "exit" or "quit", input ends, or ctx is cancelled.
//
// Before every prompt the resolver is consulted; once it has settled on
// remote content the loop stops and returns the content URL. Otherwise the
// returned URL is empty.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) string {
	for {
		if ctx.Err() != nil {
			return ""
		}
		if url, ok := a.remoteContent(); ok {
			return url
		}

		fmt.Fprint(w, a.prompt())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return ""
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "theme":
			_ = a.Theme(ctx)

		case "language":
			_ = a.Language(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "restore":
			_ = a.Restore(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return ""

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
