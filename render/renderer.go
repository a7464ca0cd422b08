package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// Renderer writes script output and pipeline results to one writer.
type Renderer struct {
	mu       sync.Mutex
	w        io.Writer
	color    bool
	styles   styles
	markdown *glamour.TermRenderer
}

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	code    lipgloss.Style
	cell    lipgloss.Style
	head    lipgloss.Style
	faint   lipgloss.Style
}

// NewRenderer returns a renderer for w. Without color, output is plain
// text with no escape sequences.
func NewRenderer(w io.Writer, color bool) *Renderer {
	re := lipgloss.NewRenderer(w)
	if !color {
		re.SetColorProfile(termenv.Ascii)
	}
	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithStandardStyle("light")
	}
	md, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		md = nil
	}
	return &Renderer{
		w:        w,
		color:    color,
		markdown: md,
		styles: styles{
			title: re.NewStyle().
				Foreground(lipgloss.Color("#FFFDF5")).
				Background(lipgloss.Color("#25A065")).
				Bold(true).
				Padding(0, 1),
			header:  re.NewStyle().Bold(true).Underline(true),
			info:    re.NewStyle().Foreground(lipgloss.Color("12")),
			success: re.NewStyle().Foreground(lipgloss.Color("2")),
			warning: re.NewStyle().Foreground(lipgloss.Color("11")),
			error:   re.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			label:   re.NewStyle().Foreground(lipgloss.Color("240")),
			value:   re.NewStyle().Bold(true),
			code: re.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("240")).
				PaddingLeft(1),
			cell:  re.NewStyle().Padding(0, 1),
			head:  re.NewStyle().Padding(0, 1).Bold(true),
			faint: re.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (r *Renderer) line(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, s)
}

func (r *Renderer) Title(text string) {
	r.line(r.styles.title.Render(text))
}

func (r *Renderer) Header(text string) {
	r.line(r.styles.header.Render(text))
}

func (r *Renderer) Write(text string) {
	r.line(text)
}

func (r *Renderer) Info(text string) {
	r.line(r.styles.info.Render("ℹ " + text))
}

func (r *Renderer) Success(text string) {
	r.line(r.styles.success.Render("✓ " + text))
}

func (r *Renderer) Warning(text string) {
	r.line(r.styles.warning.Render("! " + text))
}

func (r *Renderer) Error(text string) {
	r.line(r.styles.error.Render("✗ " + text))
}

func (r *Renderer) Metric(label string, value string) {
	r.line(r.styles.label.Render(label+":") + " " + r.styles.value.Render(value))
}

func (r *Renderer) Code(text string) {
	r.line(r.styles.code.Render(text))
}

func (r *Renderer) Markdown(text string) {
	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			r.line(strings.TrimRight(out, "\n"))
			return
		}
	}
	r.line(text)
}

// Table renders rows under optional column headers.
func (r *Renderer) Table(columns []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.faint).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.head
			}
			return r.styles.cell
		}).
		Rows(rows...)
	if len(columns) > 0 {
		t = t.Headers(columns...)
	}
	r.line(t.Render())
}

// Message renders the conversational part of an answer.
func (r *Renderer) Message(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	r.Markdown(text)
}

// Script renders a script, and its diagnostic when it did not validate.
func (r *Renderer) Script(source string, diagnostic string) {
	if diagnostic != "" {
		r.Error("invalid script")
	}
	r.Code(source)
	if diagnostic != "" {
		r.Error(diagnostic)
	}
}

// Failure renders an execution error and the script that raised it.
func (r *Renderer) Failure(message string, source string) {
	r.Error("error executing script")
	r.Code(message)
	r.Header("script")
	r.Code(source)
}
