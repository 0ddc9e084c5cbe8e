package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sexpr/internal/diag"
	"sexpr/internal/source"
)

// Pretty formats diagnostics for humans. It walks bag.Items() in order
// (call bag.Sort() beforehand) and prints each as
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//
// followed, when opts.Context is set, by the source line with a ^~~~
// underline covering the primary span, then the notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeader(w, fs, d.Severity, d.Code, d.Primary, d.Message, opts)
		if opts.Context {
			printContext(w, fs, d.Primary, opts)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printNote(w, fs, note, opts)
				if opts.Context {
					printContext(w, fs, note.Span, opts)
				}
			}
		}
	}
}

func printHeader(w io.Writer, fs *source.FileSet, sev diag.Severity, code diag.Code, sp source.Span, msg string, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)

	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, opts.PathMode), start.Line, start.Col, sevText, code.ID(), msg)
}

func printNote(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	f := fs.Get(note.Span.File)
	start, _ := fs.Resolve(note.Span)

	label := "note"
	if opts.Color {
		label = color.New(color.FgHiCyan).Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		formatPath(f, opts.PathMode), start.Line, start.Col, label, note.Msg)
}

// printContext prints the first line the span touches, then an underline.
// The caret sits at the span start; tildes extend over the rest of the span,
// clipped at end of line. Widths follow display columns so wide runes stay
// aligned.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	lineText := f.GetLine(start.Line)

	lineStart := lineStartOffset(f, start.Line)
	if sp.Start < lineStart {
		return
	}
	startInLine := int(sp.Start - lineStart)
	if startInLine > len(lineText) {
		startInLine = len(lineText)
	}
	endInLine := startInLine
	if sp.End > sp.Start {
		endInLine = int(sp.End - lineStart)
	}
	if endInLine > len(lineText) {
		endInLine = len(lineText)
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(lineText[:startInLine])))
	spanWidth := runewidth.StringWidth(lineText[startInLine:endInLine])
	underline := "^"
	if spanWidth > 1 {
		underline += strings.Repeat("~", spanWidth-1)
	}
	if opts.Color {
		underline = color.New(color.FgHiGreen, color.Bold).Sprint(underline)
	}

	fmt.Fprintf(w, "  %s\n", expandTabs(lineText))
	fmt.Fprintf(w, "  %s%s\n", pad, underline)
}

// expandTabs rewrites tabs to four spaces so underline columns line up.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// lineStartOffset returns the byte offset where the given 1-based line begins.
func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if int(line-2) < len(f.LineIdx) {
		return f.LineIdx[line-2] + 1
	}
	return 0
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgHiRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgHiYellow, color.Bold)
	default:
		return color.New(color.FgHiCyan)
	}
}
