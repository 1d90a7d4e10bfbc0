package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"busguard/internal/diag"
	"busguard/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	caret, gutter   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	var head strings.Builder
	if loc := location(fs, d.Primary, opts.PathMode); loc != "" {
		head.WriteString(p.path.Sprint(loc))
		head.WriteString(": ")
	}
	head.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	head.WriteString(" ")
	head.WriteString(p.code.Sprint(d.Code.ID()))
	head.WriteString(": ")
	head.WriteString(d.Message)
	fmt.Fprintln(w, head.String())

	writeSnippet(w, fs, d.Primary, opts, p, p.caret)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		loc := location(fs, n.Span, opts.PathMode)
		if loc != "" {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), loc, n.Msg)
		} else {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
		}
		if opts.Context > 0 {
			writeSnippet(w, fs, n.Span, opts, p, p.note)
		}
	}
}

// writeSnippet prints the lines around span with a gutter and a caret line
// under the first line of the span.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette, mark *color.Color) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0)) //nolint:gosec // non-negative int8
	first := start.Line - min(ctx, start.Line-1)
	last := max(min(start.Line+ctx, lineCount(f)), start.Line)
	gw := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gw, ln), text)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		prefix := expandTabs(raw[:min(int(start.Col-1), len(raw))])
		var underlined string
		if end.Line == start.Line && end.Col > start.Col {
			underlined = raw[min(int(start.Col-1), len(raw)):min(int(end.Col-1), len(raw))]
		} else if end.Line > start.Line {
			underlined = raw[min(int(start.Col-1), len(raw)):]
		}
		n := max(runewidth.StringWidth(expandTabs(underlined)), 1)
		marks := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", runewidth.StringWidth(prefix)), mark.Sprint(marks))
	}
}

func lineCount(f *source.File) uint32 {
	n := uint32(len(f.LineIdx)) //nolint:gosec // bounded by file size
	if len(f.Content) == 0 || f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
