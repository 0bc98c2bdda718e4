package render

import "strings"

// wrapText greedily folds text into lines of at most limit runes each,
// breaking at the last space before the limit or mid word when a line has no
// space to break at. Hard line breaks are always kept as line boundaries of
// their own. A limit below one is treated as one.
func wrapText(text string, limit int) []string {
	if limit < 1 {
		limit = 1
	}

	var lines []string
	for para := range strings.SplitSeq(text, "\n") {
		runes := []rune(para)
		for len(runes) > limit {
			brk := -1
			for i := limit; i > 0; i-- {
				if runes[i] == ' ' {
					brk = i
					break
				}
			}
			if brk <= 0 {
				lines = append(lines, string(runes[:limit]))
				runes = runes[limit:]
				continue
			}
			lines = append(lines, string(runes[:brk]))
			runes = runes[brk+1:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}

// hardBreaks counts explicit line breaks in text; inter paragraph spacing
// scales with these, not with wrapped lines.
func hardBreaks(text string) int {
	return strings.Count(text, "\n")
}
