package i18n

import "strings"

const wordsPerMinute = 200

// ReadTime estimates reading time in whole minutes for a piece of content,
// rounding up. Empty content is zero minutes.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// BlogReadTime derives a blog's read time from the fallback locale's
// content. Other locales are not measured separately.
func BlogReadTime(b Bundle[BlogFields]) int {
	return ReadTime(b[Fallback].Content)
}
