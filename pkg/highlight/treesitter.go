package highlight

import (
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// treeSitterHighlighter serves lines out of a whole-file token
// partition built from a tree-sitter parse. The parse happens once per
// session; HighlightLine then slices the partition at the running byte
// offset, so multi-line tokens (strings, block comments) are clipped
// cleanly at line boundaries.
type treeSitterHighlighter struct {
	ranges []StyledRange
	offset int
}

func newTreeSitterSession(lang *sitter.Language, text string) LineHighlighter {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree := parser.Parse(nil, []byte(text))
	defer tree.Close()

	var leaves []StyledRange
	collectLeaves(tree.RootNode(), text, &leaves)

	return &treeSitterHighlighter{ranges: leaves}
}

// collectLeaves walks the parse tree and records one styled range per
// leaf token. String-like nodes are kept whole rather than descended,
// since their children are just the delimiter tokens. Gaps between
// leaves (whitespace) are filled later by the cache's line
// normalization.
func collectLeaves(node *sitter.Node, text string, out *[]StyledRange) {
	if node == nil {
		return
	}
	if node.ChildCount() == 0 || isStringNode(node.Type()) {
		lo, hi := int(node.StartByte()), int(node.EndByte())
		if lo < hi && hi <= len(text) {
			*out = append(*out, StyledRange{
				Type: classifyNode(node.Type(), text[lo:hi]),
				Lo:   lo,
				Hi:   hi,
			})
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectLeaves(node.Child(i), text, out)
	}
}

func (h *treeSitterHighlighter) HighlightLine(line string) []StyledRange {
	lo, hi := h.offset, h.offset+len(line)
	h.offset = hi

	var out []StyledRange
	for _, r := range h.ranges {
		if r.Hi <= lo {
			continue
		}
		if r.Lo >= hi {
			break
		}
		clippedLo, clippedHi := r.Lo, r.Hi
		if clippedLo < lo {
			clippedLo = lo
		}
		if clippedHi > hi {
			clippedHi = hi
		}
		out = append(out, StyledRange{Type: r.Type, Lo: clippedLo - lo, Hi: clippedHi - lo})
	}
	return out
}

// classifyNode maps a tree-sitter leaf node to a chroma token type.
// Anonymous nodes whose type equals their text are grammar literals:
// keywords when alphabetic, operators or punctuation otherwise.
func classifyNode(nodeType, value string) chroma.TokenType {
	switch nodeType {
	case "comment", "line_comment", "block_comment":
		return chroma.Comment
	case "escape_sequence":
		return chroma.LiteralStringEscape
	case "identifier":
		return chroma.Name
	case "type_identifier", "primitive_type":
		return chroma.NameClass
	case "field_identifier", "property_identifier":
		return chroma.NameProperty
	case "package_identifier", "namespace":
		return chroma.NameNamespace
	case "true", "false", "nil", "none", "iota":
		return chroma.KeywordConstant
	}

	if isStringNode(nodeType) {
		return chroma.LiteralString
	}
	if strings.Contains(nodeType, "number") || strings.HasSuffix(nodeType, "_literal") {
		return chroma.LiteralNumber
	}

	if nodeType == value {
		if isAlphabetic(value) {
			return chroma.Keyword
		}
		if strings.ContainsAny(value, "+-*/%<>=!&|^~") {
			return chroma.Operator
		}
		return chroma.Punctuation
	}
	return chroma.Text
}

func isStringNode(nodeType string) bool {
	return strings.Contains(nodeType, "string") || strings.Contains(nodeType, "char") ||
		nodeType == "rune_literal"
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return true
}
