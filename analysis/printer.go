package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer writes the console narration: a banner per pass, the optional
// detail lines and the narrative paragraph.
type Printer struct {
	w        io.Writer
	detailed bool
	banner   *color.Color
	detail   *color.Color
}

func NewPrinter(w io.Writer, detailed, colored bool) *Printer {
	p := &Printer{
		w:        w,
		detailed: detailed,
		banner:   color.New(color.FgCyan, color.Bold),
		detail:   color.New(color.FgYellow),
	}
	if !colored {
		p.banner.DisableColor()
		p.detail.DisableColor()
	}
	return p
}

func (p *Printer) Premise() {
	p.heading("PREMISE")
	fmt.Fprintln(p.w, premiseText)
}

func (p *Printer) Report(r Report, chartPath string) {
	fmt.Fprint(p.w, "\n\n")
	p.heading(fmt.Sprintf("PLOT %d: %s", r.Number, r.Title))
	if chartPath != "" {
		fmt.Fprintf(p.w, "(chart: %s)\n", chartPath)
	}
	if p.detailed {
		for _, d := range r.Details {
			p.detail.Fprintln(p.w, d)
		}
	}
	fmt.Fprintln(p.w, "...so")
	fmt.Fprintln(p.w, r.Narrative)
}

func (p *Printer) heading(title string) {
	rule := strings.Repeat("-", len(title))
	p.banner.Fprintln(p.w, rule)
	p.banner.Fprintln(p.w, title)
	p.banner.Fprintln(p.w, rule)
}
