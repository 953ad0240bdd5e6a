package local

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// MinSegmentLength is the shortest trimmed segment, in characters, that is
// considered for classification.
const MinSegmentLength = 8

// segmentSeparators are sentence terminators and line breaks.
const segmentSeparators = ".!?\n\r"

// Segments returns the sentence-like units of text: text is split on
// sentence terminators and line breaks, runs of separators are collapsed,
// each unit is trimmed and units shorter than MinSegmentLength are skipped.
// The sequence is lazy and may be ranged over more than once.
func Segments(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for rest != "" {
			var segment string
			if i := strings.IndexAny(rest, segmentSeparators); i >= 0 {
				segment, rest = rest[:i], rest[i+1:]
			} else {
				segment, rest = rest, ""
			}

			segment = strings.TrimSpace(segment)
			if utf8.RuneCountInString(segment) < MinSegmentLength {
				continue
			}
			if !yield(segment) {
				return
			}
		}
	}
}
