package render

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measure returns the advance width of s drawn with face, adding spacing
// between consecutive runes.
func Measure(face font.Face, s string, spacing fixed.Int26_6) fixed.Int26_6 {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}

	return font.MeasureString(face, s) + spacing*fixed.Int26_6(n-1)
}

// Wrap breaks text into lines no wider than maxWidth, splitting on
// whitespace. A word wider than maxWidth is broken between runes.
func Wrap(face font.Face, text string, maxWidth, spacing fixed.Int26_6) []string {
	var (
		lines []string
		cur   string
	)

	for _, word := range strings.Fields(text) {
		for Measure(face, word, spacing) > maxWidth {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}

			head, tail := splitWord(face, word, maxWidth, spacing)
			lines = append(lines, head)
			word = tail
		}

		if word == "" {
			continue
		}

		if cur == "" {
			cur = word
			continue
		}

		if candidate := cur + " " + word; Measure(face, candidate, spacing) <= maxWidth {
			cur = candidate
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}

	if cur != "" {
		lines = append(lines, cur)
	}

	return lines
}

// splitWord returns the longest prefix of word that fits, never less than
// one rune, and the remainder.
func splitWord(face font.Face, word string, maxWidth, spacing fixed.Int26_6) (string, string) {
	_, first := utf8.DecodeRuneInString(word)
	cut := first

	for i, r := range word {
		if i == 0 {
			continue
		}

		end := i + utf8.RuneLen(r)
		if Measure(face, word[:end], spacing) > maxWidth {
			break
		}

		cut = end
	}

	return word[:cut], word[cut:]
}
