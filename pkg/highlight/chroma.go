package highlight

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// chromaHighlighter tokenizes each line independently through a chroma
// lexer. Line-at-a-time lexing can mis-style constructs spanning lines,
// which is an accepted limitation of the fallback path.
type chromaHighlighter struct {
	lexer chroma.Lexer
}

func newChromaSession(lexer chroma.Lexer) LineHighlighter {
	return &chromaHighlighter{lexer: lexer}
}

func (h *chromaHighlighter) HighlightLine(line string) []StyledRange {
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return []StyledRange{{Type: chroma.Text, Lo: 0, Hi: len(line)}}
	}

	var out []StyledRange
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len(tok.Value)
		if n == 0 {
			continue
		}
		out = append(out, StyledRange{Type: tok.Type, Lo: offset, Hi: offset + n})
		offset += n
	}
	return out
}

// SessionFor picks the tokenizer factory for a file: a tree-sitter
// session when a grammar is registered for the extension, chroma's
// lexer registry otherwise, plaintext as the last resort.
func SessionFor(path string) func(text string) LineHighlighter {
	if lang, ok := GrammarFor(path); ok {
		return func(text string) LineHighlighter {
			return newTreeSitterSession(lang, text)
		}
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	return func(string) LineHighlighter {
		return newChromaSession(lexer)
	}
}
