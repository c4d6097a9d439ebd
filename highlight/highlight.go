package highlight

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ColorClass names the role of a span; the renderer maps it to a style.
type ColorClass int

const (
	Default ColorClass = iota
	Keyword
	Comment
	String
	Number
	Tag
	Attribute
	Selector
	Property
	Function
	Type
)

// Span marks Length runes starting at rune offset Start. Spans may overlap
// (later ones win) and are not checked against the line length.
type Span struct {
	Start  int
	Length int
	Class  ColorClass
}

type Highlighter interface {
	Highlight(line string) []Span
}

// For returns the highlighter for path: the rule table of its FileType when
// there is one, otherwise a chroma lexer matched on the file name.
func For(path string) Highlighter {
	if ft := DetectFileType(path); ft != Plain {
		return ForType(ft)
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return newChromaHighlighter(lexer)
	}
	return plain{}
}

// ForType returns the rule-table highlighter for ft.
func ForType(ft FileType) Highlighter {
	if rules, ok := ruleTables[ft]; ok {
		return ruleHighlighter(rules)
	}
	return plain{}
}

type plain struct{}

func (plain) Highlight(string) []Span { return nil }

type ruleHighlighter []rule

func (rules ruleHighlighter) Highlight(line string) []Span {
	var spans []Span
	for _, r := range rules {
		m, err := r.re.FindStringMatch(line)
		for err == nil && m != nil {
			if m.Length > 0 {
				spans = append(spans, Span{Start: m.Index, Length: m.Length, Class: r.class})
			}
			m, err = r.re.FindNextMatch(m)
		}
	}
	return spans
}

const maxCachedLines = 4096

// chromaHighlighter tokenizes one line at a time, so constructs spanning
// several lines (block comments, heredocs) are only colored line by line.
type chromaHighlighter struct {
	lexer chroma.Lexer
	cache map[string][]Span
}

func newChromaHighlighter(lexer chroma.Lexer) *chromaHighlighter {
	return &chromaHighlighter{
		lexer: chroma.Coalesce(lexer),
		cache: make(map[string][]Span),
	}
}

func (h *chromaHighlighter) Highlight(line string) []Span {
	if cached, ok := h.cache[line]; ok {
		return cached
	}

	iter, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var spans []Span
	offset := 0
	for _, tok := range iter.Tokens() {
		n := utf8.RuneCountInString(tok.Value)
		if class := tokenClass(tok.Type); class != Default && n > 0 {
			spans = append(spans, Span{Start: offset, Length: n, Class: class})
		}
		offset += n
	}

	if len(h.cache) >= maxCachedLines {
		h.cache = make(map[string][]Span)
	}
	h.cache[line] = spans
	return spans
}

func tokenClass(t chroma.TokenType) ColorClass {
	switch {
	case t == chroma.KeywordType || t == chroma.NameClass || t == chroma.NameBuiltinPseudo:
		return Type
	case t.InCategory(chroma.Keyword) || t == chroma.NameBuiltin:
		return Keyword
	case t.InCategory(chroma.Comment):
		return Comment
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t == chroma.NameTag:
		return Tag
	case t == chroma.NameAttribute:
		return Attribute
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic || t == chroma.NameDecorator:
		return Function
	default:
		return Default
	}
}
