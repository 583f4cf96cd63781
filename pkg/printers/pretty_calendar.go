package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/api"
)

const layoutISO = "2006-01-02"

const width = len("11 12 13 14 15 16 17") // an example week

// Trends prints one calendar month per month present in points. Each day
// is colored by its dominant sentiment; days without entries are faint.
func (pp *PrettyPrint) Trends(points ...api.TrendPoint) {
	if len(points) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "No sufficient data for sentiment trends. Keep journaling!")
		return
	}

	byDay := make(map[string]api.TrendPoint, len(points))
	var first, last time.Time
	for _, p := range points {
		day, err := time.Parse(layoutISO, p.Date)
		if err != nil {
			continue
		}
		byDay[p.Date] = p
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	if first.IsZero() {
		return
	}

	for month := FirstOfMonth(first); !month.After(last); month = NextMonth(month) {
		days := DaysIn(month)
		moods := make([]api.Sentiment, days)
		for i := 0; i < days; i++ {
			key := month.AddDate(0, 0, i).Format(layoutISO)
			if p, ok := byDay[key]; ok {
				moods[i] = Dominant(p)
			}
		}
		pp.PrintMonthMood(month, moods)
	}
	pp.Legend()
}

// Dominant returns the sentiment with the highest count for the day. Ties
// go to the earlier sentiment in api.Sentiments order. A day with no
// counts has no dominant sentiment.
func Dominant(p api.TrendPoint) api.Sentiment {
	var top api.Sentiment
	best := 0
	for _, s := range api.Sentiments() {
		if n := p.Count(s); n > best {
			top, best = s, n
		}
	}
	return top
}

// PrintMonthMood prints a month grid starting on Sunday.
func (pp *PrettyPrint) PrintMonthMood(then time.Time, moods []api.Sentiment) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", max(mid, 0)), m, strings.Repeat(" ", max(width-mid-len(m), 0)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	faint := color.New(color.Faint, color.FgWhite)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(moods) && moods[i] != "" {
			c := SentimentColor(moods[i])
			c.Add(color.Bold)
			_, _ = c.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = faint.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// Legend prints the sentiment color key.
func (pp *PrettyPrint) Legend() {
	parts := make([]string, 0, len(api.Sentiments()))
	for _, s := range api.Sentiments() {
		parts = append(parts, SentimentColor(s).Sprint(s.Title()))
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "  "))
}

func FirstOfMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
