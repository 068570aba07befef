package textwrap

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Wrap breaks text into lines no wider than maxWidth pixels.
// Hard line breaks are kept. Lines break at Unicode line-break opportunities;
// a word wider than maxWidth is split between grapheme clusters.
// A maxWidth <= 0 disables wrapping.
func Wrap(m Measurer, text string, f Font, maxWidth float64) string {
	text = norm.NFC.String(text)
	paragraphs := splitLines(text)
	if maxWidth <= 0 {
		return strings.Join(paragraphs, "\n")
	}

	var out []string
	for _, para := range paragraphs {
		if m.Width(para, f) <= maxWidth {
			out = append(out, para)
			continue
		}
		out = append(out, wrapParagraph(m, para, f, maxWidth)...)
	}
	return strings.Join(out, "\n")
}

func wrapParagraph(m Measurer, para string, f Font, maxWidth float64) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		lines = append(lines, strings.TrimRight(current.String(), " \t"))
		current.Reset()
	}

	state := -1
	rest := para
	for len(rest) > 0 {
		var segment string
		var mustBreak bool
		segment, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)

		candidate := current.String() + segment
		if m.Width(strings.TrimRight(candidate, " \t"), f) <= maxWidth {
			current.WriteString(segment)
		} else {
			flush()
			word := strings.TrimRight(segment, " \t")
			if m.Width(word, f) <= maxWidth {
				current.WriteString(segment)
			} else {
				// The word alone does not fit; emit full chunks and keep the tail
				chunks := breakWord(m, word, f, maxWidth)
				lines = append(lines, chunks[:len(chunks)-1]...)
				current.WriteString(chunks[len(chunks)-1])
				current.WriteString(segment[len(word):])
			}
		}

		if mustBreak && len(rest) > 0 {
			flush()
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// breakWord splits word into chunks that fit maxWidth, never splitting a
// grapheme cluster. A single cluster wider than maxWidth gets its own chunk.
func breakWord(m Measurer, word string, f Font, maxWidth float64) []string {
	var chunks []string
	var current strings.Builder

	state := -1
	rest := word
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		if current.Len() > 0 && m.Width(current.String()+cluster, f) > maxWidth {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(cluster)
	}
	chunks = append(chunks, current.String())
	return chunks
}

// splitLines splits text by hard line breaks, normalising line endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
