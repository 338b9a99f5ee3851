package output

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const spinnerGlyphs = `|/-\`

// Progress renders a single-line download status. It only formats text; it
// never drives control flow and callers own the actual printing.
type Progress struct {
	calls int
}

func NewProgress() *Progress {
	return &Progress{}
}

// Render produces a carriage-return-prefixed status line for the current
// chunk, cycling the spinner glyph on each call. The line is padded to the
// terminal width so a shorter line fully overwrites the previous one.
func (p *Progress) Render(completed, total int64) string {
	glyph := spinnerGlyphs[p.calls%len(spinnerGlyphs)]
	p.calls++
	line := fmt.Sprintf(" Processing %c %s Written %d/%d bytes.", glyph, StyleSymbols["bullet"], completed, total)
	// pad by displayed columns, not bytes; the bullet glyph is multi-byte
	if width, cols := termWidth(), utf8.RuneCountInString(line); cols < width {
		line += strings.Repeat(" ", width-cols)
	}
	return "\r" + debugStyle.Render(line)
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// FormatBytes converts bytes to human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
