package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindease/pkg/api"
)

// PrettyPrint writes journal data for humans. Out defaults to color.Output.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// SentimentColor picks the terminal color used for s.
func SentimentColor(s api.Sentiment) *color.Color {
	switch s {
	case api.SentimentPositive:
		return color.New(color.FgGreen)
	case api.SentimentNeutral:
		return color.New(color.FgHiBlack)
	case api.SentimentNegative:
		return color.New(color.FgRed)
	case api.SentimentMixed:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgBlue)
}

// Entries prints entries newest first, one block per entry.
func (pp *PrettyPrint) Entries(entries ...api.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	for _, e := range entries {
		label := ""
		if !e.Sentiment.Absent() {
			label = SentimentColor(e.Sentiment).Sprint(e.Sentiment.Title())
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), d.Sprint(e.Date), label, e.Text)
		} else {
			tbl.AddRow(d.Sprint(e.Date), label, e.Text)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Summary prints the per-sentiment counts.
func (pp *PrettyPrint) Summary(sum api.SentimentSummary) {
	if sum.Total == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "No sentiment data yet.")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range api.Sentiments() {
		tbl.AddRow(SentimentColor(s).Sprintf("%10s", s.Title()), sum.Count(s))
	}
	tbl.AddRow(bold.Sprintf("%10s", "Total"), sum.Total)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Period prints a narrative summary and how many entries it covers.
func (pp *PrettyPrint) Period(p api.PeriodSummary) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s .. %s", p.Start, p.End)
	if p.Empty() {
		_, _ = f.Fprintln(pp.out(), " (no entries)")
	} else {
		_, _ = f.Fprintf(pp.out(), " (%d entries)\n", p.EntryCount)
	}
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), strings.TrimSpace(p.Summary))
	pp.NewLine()
}
