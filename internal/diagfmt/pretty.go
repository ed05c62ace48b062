package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tether/internal/diag"
	"tether/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	path := formatPath(f, fs, opts.PathMode)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		c := sevColor(d.Severity)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col, c.Sprint(sev), c.Sprint(code), d.Message)
	} else {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col, sev, code, d.Message)
	}

	printSnippet(w, f, start, end, d.Severity, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "note: %s:%d:%d: %s\n",
				formatPath(nf, fs, opts.PathMode), nstart.Line, nstart.Col, n.Msg)
		}
	}
}

// printSnippet печатает строку с диагностикой, контекст вокруг и
// подчёркивание ^~~~ под спаном.
func printSnippet(w io.Writer, f *source.File, start, end source.LineCol, sev diag.Severity, opts PrettyOpts) {
	line := f.GetLine(start.Line)
	if line == "" && start.Line != 1 {
		return
	}

	ctx := int(opts.Context)
	gutter := len(fmt.Sprintf("%d", start.Line+uint32(max(ctx, 0))))

	for i := ctx; i > 0; i-- {
		n := int(start.Line) - i
		if n < 1 {
			continue
		}
		fmt.Fprintf(w, " %*d | %s\n", gutter, n, f.GetLine(uint32(n)))
	}

	fmt.Fprintf(w, " %*d | %s\n", gutter, start.Line, line)

	// Подчёркивание: ^ в начале спана, ~ до его конца в пределах строки.
	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = startCol + 1
	}
	if startCol >= 1 && startCol <= len(line)+1 {
		pad := runewidth.StringWidth(prefixOf(line, startCol-1))
		width := max(endCol-startCol, 1)
		marker := "^" + strings.Repeat("~", width-1)
		if opts.Color {
			marker = sevColor(sev).Sprint(marker)
		}
		fmt.Fprintf(w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", pad), marker)
	}

	for i := 1; i <= ctx; i++ {
		n := int(start.Line) + i
		text := f.GetLine(uint32(n))
		if text == "" {
			break
		}
		fmt.Fprintf(w, " %*d | %s\n", gutter, n, text)
	}
}

// prefixOf возвращает первые n байт строки, не разрывая её за концом.
func prefixOf(line string, n int) string {
	if n < 0 {
		return ""
	}
	if n > len(line) {
		n = len(line)
	}
	return line[:n]
}
