package options

import "strings"

func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap breaks text into lines of at most width columns at word
// boundaries. Words longer than width get a line of their own.
func Wrap(text string, width int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(words[0])
	count := width - len(words[0])
	for _, word := range words[1:] {
		if len(word)+1 > count {
			b.WriteString("\n")
			b.WriteString(word)
			count = width - len(word)
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
		count -= 1 + len(word)
	}
	return b.String()
}
