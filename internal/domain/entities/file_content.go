package entities

import (
	"fmt"
	"unicode/utf8"
)

// FileContent is a decoded file payload after the truncation policy is applied.
type FileContent struct {
	Text      string
	Truncated bool
	Limit     int
}

// NewFileContent keeps at most limit characters (runes) of text.
func NewFileContent(text string, limit int) FileContent {
	if utf8.RuneCountInString(text) <= limit {
		return FileContent{Text: text, Limit: limit}
	}

	count := 0
	for idx := range text {
		if count == limit {
			return FileContent{Text: text[:idx], Truncated: true, Limit: limit}
		}
		count++
	}
	return FileContent{Text: text, Limit: limit}
}

// String renders the content followed by the truncation marker when it was cut.
func (c FileContent) String() string {
	if !c.Truncated {
		return c.Text
	}
	return fmt.Sprintf(
		"%s\n\n... [TRUNCATED: File too large. Only first %d chars shown] ...",
		c.Text, c.Limit,
	)
}
