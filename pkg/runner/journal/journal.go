// Package journal implements the entry commands.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/printers"
)

// ErrEntryNotFound is returned when an id is not in the user's journal.
var ErrEntryNotFound = errors.New("journal entry not found")

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

// List prints the user's entries, newest first.
type List struct {
	Backend  app.Backend
	Username string
	ShowID   bool
	Limit    int
	Out      io.Writer
	JSON     bool
}

func (l *List) Do(ctx context.Context) error {
	entries, err := l.Backend.ListEntries(ctx, l.Username)
	if err != nil {
		return fmt.Errorf("listing entries: %s", api.Describe(err))
	}
	if l.Limit > 0 && len(entries) > l.Limit {
		entries = entries[:l.Limit]
	}
	if l.JSON {
		if entries == nil {
			entries = []api.Entry{}
		}
		return printers.JSON(l.Out, entries)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.TitleWithCount("Past Entries", len(entries))
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(output(l.Out), "No journal entries yet. Start by writing one!")
		return nil
	}
	pp.Entries(entries...)
	return nil
}

// Write stores a new entry.
type Write struct {
	Backend  app.Backend
	Username string
	Text     string
	Out      io.Writer
	JSON     bool
}

func (w *Write) Do(ctx context.Context) error {
	text := strings.TrimSpace(w.Text)
	if text == "" {
		return errors.New("entry text is empty")
	}
	e, err := w.Backend.CreateEntry(ctx, w.Username, text)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %s", api.Describe(err))
	}
	if w.JSON {
		return printers.JSON(w.Out, e)
	}
	_, _ = fmt.Fprintln(output(w.Out), "Journal entry saved successfully!")
	pp := printers.PrettyPrint{ShowID: true, Out: w.Out}
	pp.Entries(e)
	return nil
}

// find looks id up in the user's journal.
func find(ctx context.Context, backend app.Backend, username, id string) (api.Entry, error) {
	entries, err := backend.ListEntries(ctx, username)
	if err != nil {
		return api.Entry{}, fmt.Errorf("listing entries: %s", api.Describe(err))
	}
	id = strings.TrimSpace(id)
	for _, e := range entries {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return api.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// Insight prints an AI insight for one entry.
type Insight struct {
	Backend  app.Backend
	Username string
	ID       string
	Out      io.Writer
	JSON     bool
}

func (i *Insight) Do(ctx context.Context) error {
	e, err := find(ctx, i.Backend, i.Username, i.ID)
	if err != nil {
		return err
	}
	insight, err := i.Backend.Insight(ctx, e.Text)
	if err != nil {
		return fmt.Errorf("failed to get insight: %s", api.Describe(err))
	}
	if i.JSON {
		return printers.JSON(i.Out, map[string]string{"id": e.ID.String(), "insight": insight})
	}
	_, _ = color.New(color.Bold).Fprintln(output(i.Out), "AI Insight:")
	_, err = fmt.Fprintln(output(i.Out), insight)
	return err
}

// Recalc classifies an entry whose sentiment is unknown again.
type Recalc struct {
	Backend  app.Backend
	Username string
	ID       string
	Out      io.Writer
	JSON     bool
}

func (r *Recalc) Do(ctx context.Context) error {
	e, err := find(ctx, r.Backend, r.Username, r.ID)
	if err != nil {
		return err
	}
	if e.Sentiment != api.SentimentUnknown {
		return fmt.Errorf("entry %s already has sentiment %s", e.ID, e.Sentiment.Title())
	}
	s, err := r.Backend.UpdateSentiment(ctx, r.Username, e.ID, e.Text)
	if err != nil {
		return fmt.Errorf("failed to update sentiment: %s", api.Describe(err))
	}
	if r.JSON {
		return printers.JSON(r.Out, map[string]string{"id": e.ID.String(), "new_sentiment": string(s)})
	}
	_, _ = fmt.Fprint(output(r.Out), "Sentiment for entry updated successfully! New sentiment: ")
	_, err = printers.SentimentColor(s).Fprintln(output(r.Out), s.Title())
	return err
}

// Prompt prints a journaling prompt based on recent entries.
type Prompt struct {
	Backend  app.Backend
	Username string
	Out      io.Writer
	JSON     bool
}

func (p *Prompt) Do(ctx context.Context) error {
	prompt, err := p.Backend.GeneratePrompt(ctx, p.Username)
	if err != nil {
		return fmt.Errorf("failed to generate prompt: %s", api.Describe(err))
	}
	if p.JSON {
		return printers.JSON(p.Out, map[string]string{"prompt": prompt})
	}
	_, _ = color.New(color.Bold).Fprintln(output(p.Out), "Suggested Prompt:")
	_, err = fmt.Fprintln(output(p.Out), prompt)
	return err
}
