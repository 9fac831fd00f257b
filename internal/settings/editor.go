package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrAborted is returned when the user leaves the editor without saving.
// During mandatory first-run setup the caller exits the process on it.
var ErrAborted = errors.New("settings edit aborted")

// Editor drives the interactive numbered-menu editor over a terminal.
type Editor struct {
	in  *bufio.Reader
	out io.Writer
}

// NewEditor creates an editor reading from in and writing to out. An
// existing bufio.Reader is reused so a caller sharing stdin with its own
// menu loop does not lose buffered input.
func NewEditor(in io.Reader, out io.Writer) *Editor {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Editor{in: br, out: out}
}

func (e *Editor) readLine() (string, error) {
	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// prompt asks for a value, returning def when the user just presses enter.
func (e *Editor) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(e.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(e.out, "%s: ", label)
	}
	v, err := e.readLine()
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// promptRequired re-asks until the value is non-empty. EOF counts as abort.
func (e *Editor) promptRequired(label string) (string, error) {
	for {
		v, err := e.prompt(label, "")
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(e.out, "This field cannot be empty.")
	}
}

// FirstRun collects all five fields for a fresh installation. Token and
// owner are mandatory; display texts fall back to their defaults on empty
// input.
func (e *Editor) FirstRun(s Settings) (Settings, error) {
	fmt.Fprintln(e.out, "First-run setup. The bot cannot start without a token and owner ID.")

	var err error
	if s.BotToken, err = e.promptRequired("Bot token"); err != nil {
		return s, err
	}
	if s.OwnerID, err = e.promptRequired("Owner Telegram ID"); err != nil {
		return s, err
	}
	if s.Welcome, err = e.prompt("/start message", s.Welcome); err != nil {
		return s, err
	}
	if s.ImageButton, err = e.prompt("Image button text", s.ImageButton); err != nil {
		return s, err
	}
	if s.VideoButton, err = e.prompt("Video button text", s.VideoButton); err != nil {
		return s, err
	}
	return s, nil
}

// Run shows the numbered menu and loops until the user saves or aborts.
// The returned settings are only meaningful when err is nil; ErrAborted
// means every change made in the session is discarded.
func (e *Editor) Run(s Settings) (Settings, error) {
	for {
		fmt.Fprintf(e.out, "\n--- Bot settings ---\n")
		fmt.Fprintf(e.out, " 1) Bot token        [%s]\n", mask(s.BotToken))
		fmt.Fprintf(e.out, " 2) Owner ID         [%s]\n", s.OwnerID)
		fmt.Fprintf(e.out, " 3) Welcome message  [%s]\n", s.Welcome)
		fmt.Fprintf(e.out, " 4) Image button     [%s]\n", s.ImageButton)
		fmt.Fprintf(e.out, " 5) Video button     [%s]\n", s.VideoButton)
		fmt.Fprintf(e.out, " 6) Save and continue\n")
		fmt.Fprintf(e.out, " 7) Abort without saving\n")
		fmt.Fprint(e.out, "Choose (1-7): ")

		choice, err := e.readLine()
		if errors.Is(err, io.EOF) {
			return s, ErrAborted
		}
		if err != nil {
			return s, err
		}

		switch choice {
		case "1":
			if s.BotToken, err = e.prompt("Bot token", s.BotToken); err != nil {
				return s, err
			}
		case "2":
			if s.OwnerID, err = e.prompt("Owner Telegram ID", s.OwnerID); err != nil {
				return s, err
			}
		case "3":
			if s.Welcome, err = e.prompt("Welcome message", s.Welcome); err != nil {
				return s, err
			}
		case "4":
			if s.ImageButton, err = e.prompt("Image button text", s.ImageButton); err != nil {
				return s, err
			}
		case "5":
			if s.VideoButton, err = e.prompt("Video button text", s.VideoButton); err != nil {
				return s, err
			}
		case "6":
			return s, nil
		case "7":
			return s, ErrAborted
		default:
			fmt.Fprintln(e.out, "Invalid choice.")
		}
	}
}

// mask hides most of the token when echoing the menu.
func mask(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
