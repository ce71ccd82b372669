package syntax

import (
	"container/list"
	"context"
	"sync"

	"matchline/internal/lang"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	sitter "github.com/smacker/go-tree-sitter"
	bashlang "github.com/smacker/go-tree-sitter/bash"
	clang "github.com/smacker/go-tree-sitter/c"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	golang "github.com/smacker/go-tree-sitter/golang"
	python "github.com/smacker/go-tree-sitter/python"
	rust "github.com/smacker/go-tree-sitter/rust"
	toml "github.com/smacker/go-tree-sitter/toml"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	yaml "github.com/smacker/go-tree-sitter/yaml"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"
)

type Category int

const (
	Plain Category = iota
	Keyword
	Type
	Function
	String
	Number
	Comment
	Operator
	Error
)

// Token marks text[Start:End] (bytes) as one category.
type Token struct {
	Start int
	End   int
	Cat   Category
}

type cacheKey struct {
	lang lang.ID
	text string
}

type cacheEntry struct {
	key    cacheKey
	tokens []Token
}

type tokenLRU struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[cacheKey]*list.Element
}

func newTokenLRU(capacity int) *tokenLRU {
	if capacity <= 0 {
		capacity = 1
	}
	return &tokenLRU{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[cacheKey]*list.Element, capacity),
	}
}

func (c *tokenLRU) get(key cacheKey) ([]Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return elem.Value.(cacheEntry).tokens, true
}

func (c *tokenLRU) put(key cacheKey, tokens []Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value = cacheEntry{key: key, tokens: tokens}
		c.ll.MoveToFront(elem)
		return
	}
	c.items[key] = c.ll.PushFront(cacheEntry{key: key, tokens: tokens})

	if c.ll.Len() > c.capacity {
		back := c.ll.Back()
		delete(c.items, back.Value.(cacheEntry).key)
		c.ll.Remove(back)
	}
}

func (c *tokenLRU) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Tokenizer splits single lines of source into categorized tokens. It is
// safe for concurrent use.
type Tokenizer struct {
	cache   *tokenLRU
	parsers sync.Pool
	langs   map[lang.ID]*sitter.Language
}

func NewTokenizer(cacheSize int) *Tokenizer {
	return &Tokenizer{
		cache: newTokenLRU(cacheSize),
		parsers: sync.Pool{
			New: func() any { return sitter.NewParser() },
		},
		langs: map[lang.ID]*sitter.Language{
			lang.Go:         golang.GetLanguage(),
			lang.Rust:       rust.GetLanguage(),
			lang.Python:     python.GetLanguage(),
			lang.JavaScript: tslang.GetLanguage(),
			lang.TypeScript: tslang.GetLanguage(),
			lang.TSX:        tsxlang.GetLanguage(),
			lang.YAML:       yaml.GetLanguage(),
			lang.TOML:       toml.GetLanguage(),
			lang.JSON:       sitter.NewLanguage(tsjson.Language()),
			lang.Bash:       bashlang.GetLanguage(),
			lang.C:          clang.GetLanguage(),
			lang.CPP:        cpplang.GetLanguage(),
		},
	}
}

// Tokens covers text completely: gaps between recognised tokens are Plain.
func (t *Tokenizer) Tokens(id lang.ID, text string) []Token {
	if text == "" {
		return nil
	}

	key := cacheKey{lang: id, text: text}
	if tokens, ok := t.cache.get(key); ok {
		return tokens
	}

	tokens, ok := t.treeSitterTokens(id, text)
	if !ok {
		tokens, ok = chromaTokens(id, text)
	}
	if !ok {
		tokens = plainTokens(text)
	}
	t.cache.put(key, tokens)
	return tokens
}

func (t *Tokenizer) treeSitterTokens(id lang.ID, text string) ([]Token, bool) {
	language, ok := t.langs[id]
	if !ok || language == nil {
		return nil, false
	}

	parser := t.parsers.Get().(*sitter.Parser)
	defer t.parsers.Put(parser)
	parser.SetLanguage(language)

	source, lineStart, lineEnd := scaffoldLine(id, text)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, false
	}

	raw := make([]Token, 0, 32)
	collectLeaves(root, leafContext{lang: id, lineStart: lineStart, lineEnd: lineEnd, src: source}, "", "", &raw)
	return normalizeTokens(raw, len(text)), true
}

func chromaTokens(id lang.ID, text string) ([]Token, bool) {
	if id == "" || id == lang.Plain {
		return nil, false
	}
	lexer := lexers.Get(string(id))
	if lexer == nil {
		return nil, false
	}
	// Line comment rules expect a terminating newline.
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text+"\n")
	if err != nil {
		return nil, false
	}

	raw := make([]Token, 0, 16)
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		end := offset + len(tok.Value)
		raw = append(raw, Token{Start: offset, End: end, Cat: chromaCategory(tok.Type)})
		offset = end
	}
	return normalizeTokens(raw, len(text)), true
}

func chromaCategory(tt chroma.TokenType) Category {
	switch {
	case tt == chroma.Error:
		return Error
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt == chroma.KeywordType:
		return Type
	case tt.InCategory(chroma.Keyword):
		return Keyword
	case tt == chroma.NameFunction || tt == chroma.NameBuiltin:
		return Function
	case tt == chroma.NameClass || tt == chroma.NameNamespace:
		return Type
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt.InCategory(chroma.Operator), tt == chroma.Punctuation:
		return Operator
	default:
		return Plain
	}
}

func plainTokens(text string) []Token {
	return []Token{{Start: 0, End: len(text), Cat: Plain}}
}
