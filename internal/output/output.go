// Package output writes human and JSON output for CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

// Printer renders to stdout/stderr. Color is fixed when the printer is
// created; nothing here touches fatih/color's package-level NoColor.
type Printer struct {
	out   io.Writer
	err   io.Writer
	color bool

	bold    *color.Color
	muted   *color.Color
	accent  *color.Color
	success *color.Color
	failure *color.Color
}

// New creates a printer writing to out and errOut
func New(out, errOut io.Writer, colorEnabled bool) *Printer {
	p := &Printer{
		out:     out,
		err:     errOut,
		color:   colorEnabled,
		bold:    color.New(color.Bold),
		muted:   color.New(color.Faint),
		accent:  color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}

	for _, c := range []*color.Color{p.bold, p.muted, p.accent, p.success, p.failure} {
		if colorEnabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// ColorEnabled decides whether styled output should be produced.
// NO_COLOR counts only when non-empty (https://no-color.org).
func ColorEnabled(noColorFlag bool, noColorEnv string, configNoColor bool, isTTY bool) bool {
	if noColorFlag || noColorEnv != "" || configNoColor {
		return false
	}
	return isTTY
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorOn reports whether the printer emits ANSI styles
func (p *Printer) ColorOn() bool {
	return p.color
}

// HumanLn prints a formatted line to stdout
func (p *Printer) HumanLn(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Bold returns bold text
func (p *Printer) Bold(format string, args ...interface{}) string {
	return p.bold.Sprintf(format, args...)
}

// Muted returns dimmed text
func (p *Printer) Muted(format string, args ...interface{}) string {
	return p.muted.Sprintf(format, args...)
}

// Accent returns bold cyan text, used for identifiers
func (p *Printer) Accent(format string, args ...interface{}) string {
	return p.accent.Sprintf(format, args...)
}

// SuccessHuman prints a success line to stdout
func (p *Printer) SuccessHuman(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.success.Sprintf(format, args...))
}

// ErrorHuman prints "<label>: <message>" to stderr
func (p *Printer) ErrorHuman(label, message string) {
	fmt.Fprintf(p.err, "%s: %s\n", p.failure.Sprint(label), message)
}

// Warn prints a dimmed notice to stderr
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.err, p.muted.Sprintf(format, args...))
}

// Table renders a borderless, left-aligned table
func (p *Printer) Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

// JSON writes v as indented JSON to stdout
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ErrorResponse is the JSON shape of a failed command
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure in JSON output
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSONError writes an error object to stdout
func (p *Printer) JSONError(code, message string) error {
	return p.JSON(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
