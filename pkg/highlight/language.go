package highlight

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

// grammarMap maps file extensions to tree-sitter grammars. Files with
// no grammar here fall back to chroma's lexer registry.
var grammarMap = map[string]func() *sitter.Language{
	".go": golang.GetLanguage,

	".rs": rust.GetLanguage,

	".py":  python.GetLanguage,
	".pyw": python.GetLanguage,
	".pyi": python.GetLanguage,

	".js":  javascript.GetLanguage,
	".jsx": javascript.GetLanguage,
	".mjs": javascript.GetLanguage,
	".cjs": javascript.GetLanguage,
}

// GrammarFor returns the tree-sitter grammar for a file path, if one
// is registered for its extension.
func GrammarFor(path string) (*sitter.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if get, ok := grammarMap[ext]; ok {
		return get(), true
	}
	return nil, false
}
