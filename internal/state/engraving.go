package state

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Rune limits applied by Sanitize.
const (
	MaxCarvedText = 24
	MaxName       = 64
	MaxMessage    = 1000
)

// Engraving is the text that accompanies a shared globe: the plate carving
// and the gift card.
type Engraving struct {
	CarvedText    string `json:"carvedText"`
	SenderName    string `json:"senderName"`
	RecipientName string `json:"recipientName"`
	MessageText   string `json:"messageText"`
}

// Sanitize returns a copy with every field NFC-normalized, trimmed, stripped
// of control characters and cut to its rune limit. The message keeps line
// breaks.
func (e Engraving) Sanitize() Engraving {
	return Engraving{
		CarvedText:    cleanText(e.CarvedText, MaxCarvedText, false),
		SenderName:    cleanText(e.SenderName, MaxName, false),
		RecipientName: cleanText(e.RecipientName, MaxName, false),
		MessageText:   cleanText(e.MessageText, MaxMessage, true),
	}
}

func cleanText(s string, limit int, multiline bool) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' && multiline {
			return r
		}
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > limit {
		s = strings.TrimSpace(string(runes[:limit]))
	}
	return s
}
