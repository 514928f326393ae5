// Package chunker splits document text into overlapping windows sized for
// embedding.
package chunker

import (
	"strings"
	"unicode/utf8"
)

type Options struct {
	ChunkSize    int // target chunk size in characters
	ChunkOverlap int // overlap between consecutive chunks
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:    800,
		ChunkOverlap: 200,
	}
}

// Split breaks text on paragraph, line, sentence, then word boundaries,
// falling back to fixed windows when no separator fits. Consecutive chunks
// share ChunkOverlap trailing characters: each chunk after the first starts
// with the tail of its predecessor. Empty chunks are dropped.
func Split(text string, opts Options) []string {
	opts = normalize(opts)

	separators := []string{"\n\n", "\n", ". ", " "}

	var chunks []string
	for _, part := range splitRecursive(text, separators, opts) {
		part = strings.TrimSpace(part)
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

// SplitFixed cuts text into fixed-size windows with overlap, ignoring
// separators. Split falls back to it for runs with no usable separator.
func SplitFixed(text string, opts Options) []string {
	opts = normalize(opts)

	var chunks []string
	runes := []rune(text)

	step := opts.ChunkSize - opts.ChunkOverlap
	if step <= 0 {
		step = opts.ChunkSize
	}

	for start := 0; start < len(runes); start += step {
		end := min(start+opts.ChunkSize, len(runes))
		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}
		if end == len(runes) {
			break
		}
	}

	return chunks
}

func normalize(opts Options) Options {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 800
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = 0
	}
	if opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = opts.ChunkSize / 2
	}
	return opts
}

func splitRecursive(text string, separators []string, opts Options) []string {
	if utf8.RuneCountInString(text) <= opts.ChunkSize {
		return []string{text}
	}

	if len(separators) == 0 {
		return SplitFixed(text, opts)
	}

	sep := separators[0]
	parts := strings.Split(text, sep)

	var result []string
	var current strings.Builder
	carried := 0 // leading runes of current that are pure overlap carry

	for _, part := range parts {
		if current.Len() > 0 && utf8.RuneCountInString(current.String()+sep+part) > opts.ChunkSize {
			flushed := current.String()
			// A chunk that is nothing but the carried tail repeats the
			// previous chunk's end; skip it.
			if utf8.RuneCountInString(flushed) > carried {
				result = append(result, splitRecursive(flushed, separators[1:], opts)...)
			}
			current.Reset()
			// Carry the tail forward so consecutive chunks overlap.
			carry := overlapTail(flushed, opts.ChunkOverlap)
			carried = utf8.RuneCountInString(carry)
			current.WriteString(carry)
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}

	if current.Len() > 0 && utf8.RuneCountInString(current.String()) > carried {
		result = append(result, splitRecursive(current.String(), separators[1:], opts)...)
	}

	return result
}

func overlapTail(s string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= overlap {
		return s
	}
	return string(runes[len(runes)-overlap:])
}
