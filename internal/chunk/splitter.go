// Package chunk splits rendered documents into overlapping pieces of
// bounded length for retrieval pipelines.
package chunk

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Defaults used when a caller has no preference.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// ErrInvalidSize is returned for a non-positive size or an overlap that is
// negative or larger than the size.
var ErrInvalidSize = errors.New("invalid chunk size")

// separators are tried in order: paragraphs, lines, words, then characters.
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter cuts text into chunks of at most Size characters. Consecutive
// chunks repeat up to Overlap characters of whole pieces from the end of
// the previous chunk. Lengths count runes.
type Splitter struct {
	Size    int
	Overlap int
}

// NewSplitter validates size and overlap.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidSize, size)
	}
	if overlap < 0 || overlap > size {
		return nil, fmt.Errorf("%w: overlap %d with size %d", ErrInvalidSize, overlap, size)
	}
	return &Splitter{Size: size, Overlap: overlap}, nil
}

// Split returns the chunks of text. Blank text yields no chunks.
func (s *Splitter) Split(text string) []string {
	return s.split(text, separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	sep, rest := seps[len(seps)-1], []string(nil)
	for i, c := range seps {
		if c == "" || strings.Contains(text, c) {
			sep, rest = c, seps[i+1:]
			break
		}
	}

	var (
		out  []string
		good []string
	)
	for _, piece := range splitOn(text, sep) {
		if length(piece) < s.Size {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			out = append(out, s.merge(good, sep)...)
			good = nil
		}
		if len(rest) == 0 {
			out = append(out, piece)
		} else {
			out = append(out, s.split(piece, rest)...)
		}
	}
	if len(good) > 0 {
		out = append(out, s.merge(good, sep)...)
	}
	return out
}

// merge packs pieces joined by sep into chunks, carrying the trailing
// pieces of each chunk into the next while they fit in the overlap.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := length(sep)
	var (
		out     []string
		current []string
		total   int
	)
	joined := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	for _, p := range pieces {
		n := length(p)
		if total+n+joined(len(current)) > s.Size && len(current) > 0 {
			if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
				out = append(out, c)
			}
			for total > s.Overlap || (total > 0 && total+n+joined(len(current)) > s.Size) {
				total -= length(current[0]) + joined(len(current)-1)
				current = current[1:]
			}
		}
		current = append(current, p)
		total += n + joined(len(current)-1)
	}
	if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
		out = append(out, c)
	}
	return out
}

// splitOn splits text on sep, or into runes when sep is empty, dropping
// empty pieces.
func splitOn(text, sep string) []string {
	var parts []string
	if sep == "" {
		parts = strings.Split(text, "")
	} else {
		parts = strings.Split(text, sep)
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func length(s string) int { return utf8.RuneCountInString(s) }
