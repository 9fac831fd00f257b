// Package admin runs the optional background console: a numbered menu on
// the controlling terminal for editing settings, updating the source tree
// and stopping the bot.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/yshzap/aigenbot/internal/settings"
)

type Console struct {
	store *settings.Store
	in    *bufio.Reader
	out   io.Writer
	exit  func(code int)
}

func New(store *settings.Store) *Console {
	return &Console{
		store: store,
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		exit:  os.Exit,
	}
}

// Run loops on the menu until the stream ends or the user chooses exit.
// It shares only the settings Store with the event handlers; edits publish
// whole new snapshots, so no locking with the handlers is needed.
func (c *Console) Run(ctx context.Context) {
	for {
		fmt.Fprintf(c.out, "\n--- Admin console ---\n")
		fmt.Fprintf(c.out, " 1) Edit settings\n")
		fmt.Fprintf(c.out, " 2) Pull latest source\n")
		fmt.Fprintf(c.out, " 3) Exit\n")
		fmt.Fprint(c.out, "Choose (1-3): ")

		line, err := c.in.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Error("read admin console input", "error", err)
			}
			return
		}

		switch strings.TrimSpace(line) {
		case "1":
			c.editSettings()
		case "2":
			c.pullSource(ctx)
		case "3":
			fmt.Fprintln(c.out, "Bye.")
			c.exit(0)
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) editSettings() {
	ed := settings.NewEditor(c.in, c.out)
	updated, err := ed.Run(c.store.Current())
	if errors.Is(err, settings.ErrAborted) {
		fmt.Fprintln(c.out, "Changes discarded.")
		return
	}
	if err != nil {
		slog.Error("edit settings", "error", err)
		return
	}
	if err := c.store.Replace(updated); err != nil {
		slog.Error("save settings", "error", err)
		fmt.Fprintln(c.out, "Failed to save settings, changes not applied.")
		return
	}
	fmt.Fprintln(c.out, "Settings saved.")
}

func (c *Console) pullSource(ctx context.Context) {
	cmd := exec.CommandContext(ctx, "git", "pull")
	cmd.Stdout = c.out
	cmd.Stderr = c.out
	if err := cmd.Run(); err != nil {
		slog.Error("git pull", "error", err)
		fmt.Fprintln(c.out, "git pull failed.")
	}
}
