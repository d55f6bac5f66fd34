package highlight

import (
	"hash/fnv"

	"github.com/alecthomas/chroma/v2"
)

// StyledRange is one (style, byte range) pair of a decomposed text.
// Within an Entry the ranges are contiguous, non-overlapping, and cover
// the whole text.
type StyledRange struct {
	Type chroma.TokenType
	Lo   int
	Hi   int
}

// Entry owns one file's full text and its styled-range decomposition.
// Entries are never mutated after insertion into the cache.
type Entry struct {
	Text   string
	Ranges []StyledRange
}

// LineHighlighter tokenizes one physical line at a time, keeping any
// lexer state across calls within a single file. The returned ranges
// are relative to the line and must appear in order.
type LineHighlighter interface {
	HighlightLine(line string) []StyledRange
}

// Cache memoizes styled-range decompositions keyed by a hash of the
// file content. Each rendering context owns its own Cache; there is no
// locking and no eviction, since the set of distinct files touched in
// one debugging session is small and bounded.
type Cache struct {
	entries  map[uint64]*Entry
	computes int
}

// NewCache returns an empty highlight cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*Entry)}
}

// Computes reports how many decompositions were actually computed, as
// opposed to served from the cache.
func (c *Cache) Computes() int { return c.computes }

// GetOrCompute returns the styled-range decomposition of text,
// computing and storing it on first encounter. newSession builds the
// line tokenizer for this file; it is only invoked on a cache miss.
// The text is fed to the tokenizer one physical line at a time,
// including the line terminator, with a running byte offset converting
// per-line ranges into whole-file ranges.
func (c *Cache) GetOrCompute(text string, newSession func(text string) LineHighlighter) *Entry {
	key := hashText(text)
	if entry, ok := c.entries[key]; ok {
		return entry
	}

	c.computes++
	session := newSession(text)
	entry := &Entry{Text: text}
	offset := 0
	for _, line := range linesWithEndings(text) {
		ranges := coverLine(session.HighlightLine(line), len(line))
		for _, r := range ranges {
			entry.Ranges = append(entry.Ranges, StyledRange{Type: r.Type, Lo: offset + r.Lo, Hi: offset + r.Hi})
		}
		offset += len(line)
	}

	c.entries[key] = entry
	return entry
}

// hashText computes the content key. FNV-1a is fast and collision
// tolerance is acceptable here: source files are effectively immutable
// within one debugging session.
func hashText(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

// linesWithEndings splits text into physical lines, each retaining its
// trailing newline. A final line without a terminator is kept as is.
func linesWithEndings(text string) []string {
	var lines []string
	for len(text) > 0 {
		n := len(text)
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				n = i + 1
				break
			}
		}
		lines = append(lines, text[:n])
		text = text[n:]
	}
	return lines
}

// coverLine normalizes tokenizer output into an exact partition of
// [0, n): ranges are clamped, overlaps dropped, and gaps filled with
// plain text styling.
func coverLine(ranges []StyledRange, n int) []StyledRange {
	var out []StyledRange
	cur := 0
	for _, r := range ranges {
		lo, hi := r.Lo, r.Hi
		if lo < cur {
			lo = cur
		}
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		if lo > cur {
			out = append(out, StyledRange{Type: chroma.Text, Lo: cur, Hi: lo})
		}
		out = append(out, StyledRange{Type: r.Type, Lo: lo, Hi: hi})
		cur = hi
	}
	if cur < n {
		out = append(out, StyledRange{Type: chroma.Text, Lo: cur, Hi: n})
	}
	return out
}
