package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/api"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header    HeaderTheme
	Footer    FooterTheme
	Panel     PanelTheme
	Modal     ModalTheme
	Form      FormTheme
	Sentiment SentimentTheme
	Events    EventsTheme
}

// EventsTheme styles the debug message log.
type EventsTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Time   lipgloss.Style
	Source lipgloss.Style
	Line   lipgloss.Style
	Failed lipgloss.Style
}

// HeaderTheme styles the title bar and the session/backend line under it.
type HeaderTheme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Identity    lipgloss.Style
	Healthy     lipgloss.Style
	Unhealthy   lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}

// FooterTheme groups styles used by the bottom key hint bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Key    lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
}

// ModalTheme styles the centered notice overlay. Each notice type gets its
// own accent for the title bar and border.
type ModalTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Hint    lipgloss.Style
	Info    color.Color
	Success color.Color
	Error   color.Color
	Confirm color.Color
}

// FormTheme styles labelled inputs and their feedback lines.
type FormTheme struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Button  lipgloss.Style
	Busy    lipgloss.Style
	Link    lipgloss.Style
}

// SentimentTheme maps sentiment labels to chart and badge colors.
type SentimentTheme struct {
	Positive color.Color
	Neutral  color.Color
	Negative color.Color
	Mixed    color.Color
	Unknown  color.Color
}

// Color returns the color for s. Unrecognized labels use the unknown color.
func (t SentimentTheme) Color(s api.Sentiment) color.Color {
	switch s {
	case api.SentimentPositive:
		return t.Positive
	case api.SentimentNeutral:
		return t.Neutral
	case api.SentimentNegative:
		return t.Negative
	case api.SentimentMixed:
		return t.Mixed
	}
	return t.Unknown
}

// Badge renders the label with its emoji in the sentiment color.
func (t SentimentTheme) Badge(s api.Sentiment) string {
	label, glyph := "Unknown", "❓"
	switch s {
	case api.SentimentPositive:
		label, glyph = "Positive", "😊"
	case api.SentimentNeutral:
		label, glyph = "Neutral", "😐"
	case api.SentimentNegative:
		label, glyph = "Negative", "🙁"
	case api.SentimentMixed:
		label, glyph = "Mixed", "🤔"
	}
	return lipgloss.NewStyle().Foreground(t.Color(s)).Bold(true).Render(label + " " + glyph)
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("#3B82F6")
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Header: HeaderTheme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1D4ED8")),
			Subtitle:    muted,
			Identity:    lipgloss.NewStyle().Bold(true).Foreground(accent),
			Healthy:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#16A34A")),
			Unhealthy:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626")),
			TabActive:   lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("#2563EB")).Foreground(lipgloss.Color("#FFFFFF")),
			TabInactive: lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("250")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Key:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Status: muted,
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			Focused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Muted:  muted,
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
			Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 2),
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1),
			Body:    lipgloss.NewStyle(),
			Hint:    muted,
			Info:    lipgloss.Color("#3B82F6"),
			Success: lipgloss.Color("#22C55E"),
			Error:   lipgloss.Color("#EF4444"),
			Confirm: lipgloss.Color("#EAB308"),
		},
		Form: FormTheme{
			Label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
			Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
			Button:  lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("#2563EB")).Foreground(lipgloss.Color("#FFFFFF")),
			Busy:    lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("240")).Foreground(lipgloss.Color("252")),
			Link:    lipgloss.NewStyle().Foreground(accent).Underline(true),
		},
		Sentiment: SentimentTheme{
			Positive: lipgloss.Color("#22C55E"),
			Neutral:  lipgloss.Color("#6B7280"),
			Negative: lipgloss.Color("#EF4444"),
			Mixed:    lipgloss.Color("#F59E0B"),
			Unknown:  lipgloss.Color("#3B82F6"),
		},
		Events: EventsTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
			Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Time:   muted,
			Source: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Line:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Failed: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		},
	}
}
