package syntax

import (
	"strings"
	"unicode"

	"matchline/internal/lang"

	sitter "github.com/smacker/go-tree-sitter"
)

type leafContext struct {
	lang      lang.ID
	lineStart int
	lineEnd   int
	src       []byte
}

// collectLeaves appends one token per leaf that overlaps the scaffolded line,
// with offsets relative to the line.
func collectLeaves(node *sitter.Node, lc leafContext, parent string, grand string, out *[]Token) {
	if node == nil {
		return
	}

	start := int(node.StartByte())
	end := int(node.EndByte())
	if end <= lc.lineStart || start >= lc.lineEnd {
		return
	}

	if node.ChildCount() == 0 {
		from := max(start, lc.lineStart)
		to := min(end, lc.lineEnd)
		if from >= to {
			return
		}
		raw := strings.TrimSpace(string(lc.src[start:end]))
		n := leaf{
			kind:   strings.ToLower(node.Type()),
			parent: parent,
			grand:  grand,
			raw:    raw,
			lexeme: strings.ToLower(raw),
			named:  node.IsNamed(),
		}
		*out = append(*out, Token{
			Start: from - lc.lineStart,
			End:   to - lc.lineStart,
			Cat:   n.category(lc.lang),
		})
		return
	}

	kind := strings.ToLower(node.Type())
	for i := 0; i < int(node.ChildCount()); i++ {
		collectLeaves(node.Child(i), lc, kind, parent, out)
	}
}

type leaf struct {
	kind   string
	parent string
	grand  string
	raw    string
	lexeme string
	named  bool
}

func (n leaf) kindHas(parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(n.kind, p) {
			return true
		}
	}
	return false
}

func (n leaf) ancestorsHave(parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(n.parent, p) || strings.Contains(n.grand, p) {
			return true
		}
	}
	return false
}

func (n leaf) ancestorIn(set map[string]bool) bool {
	return set[n.parent] || set[n.grand]
}

func (n leaf) category(id lang.ID) Category {
	switch {
	case n.kind == "error" || n.kindHas("invalid"):
		return Error
	case n.kindHas("comment"):
		return Comment
	case n.kindHas("string", "char", "heredoc", "rune_literal"):
		// Object keys read better as a separate colour from values.
		if id == lang.JSON && (n.parent == "pair" || n.grand == "pair") {
			return Type
		}
		return String
	case n.kindHas("number", "integer", "int_literal", "float", "numeric", "imaginary"):
		return Number
	case literalWords[n.lexeme]:
		return Number
	case strings.HasSuffix(n.kind, "keyword"):
		return Keyword
	case n.kindHas("type_identifier", "primitive_type", "predefined_type"):
		return Type
	}

	if isIdentifier(n.kind) {
		switch {
		case n.ancestorsHave("type", "class", "struct", "interface", "trait") || n.ancestorIn(typeParents[id]):
			return Type
		case n.ancestorsHave("function", "method", "call") || n.ancestorIn(funcParents[id]):
			return Function
		case isConstantName(n.raw):
			return Number
		}
	}

	switch {
	case keywords[n.lexeme]:
		return Keyword
	case operators[n.lexeme]:
		return Operator
	case !n.named && isPunctuation(n.lexeme):
		return Operator
	}
	return Plain
}

func isIdentifier(kind string) bool {
	return strings.HasSuffix(kind, "identifier") || strings.HasSuffix(kind, "name")
}

// isConstantName reports SHOUTING_CASE names.
func isConstantName(s string) bool {
	if len(s) < 2 {
		return false
	}
	letters := false
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsDigit(r):
		case unicode.IsLetter(r):
			letters = true
			if unicode.IsLower(r) {
				return false
			}
		default:
			return false
		}
	}
	return letters
}

func isPunctuation(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "+-*/%=!<>&|^~:;,.?()[]{}") == ""
}

var literalWords = map[string]bool{
	"true": true, "false": true, "null": true, "nil": true, "none": true,
}

var funcParents = map[lang.ID]map[string]bool{
	lang.Go:         {"function_declaration": true, "method_declaration": true, "call_expression": true, "selector_expression": true},
	lang.Rust:       {"function_item": true, "call_expression": true, "field_expression": true},
	lang.JavaScript: {"function_declaration": true, "method_definition": true, "call_expression": true, "member_expression": true},
	lang.TypeScript: {"function_declaration": true, "method_definition": true, "call_expression": true, "member_expression": true},
	lang.TSX:        {"function_declaration": true, "method_definition": true, "call_expression": true, "member_expression": true},
	lang.Python:     {"function_definition": true, "call": true},
	lang.C:          {"function_definition": true, "call_expression": true},
	lang.CPP:        {"function_definition": true, "call_expression": true},
}

var typeParents = map[lang.ID]map[string]bool{
	lang.Go:         {"type_spec": true, "type_declaration": true, "parameter_declaration": true, "var_declaration": true},
	lang.Rust:       {"struct_item": true, "enum_item": true, "trait_item": true, "type_item": true},
	lang.JavaScript: {"class_declaration": true, "type_annotation": true},
	lang.TypeScript: {"interface_declaration": true, "type_alias_declaration": true, "type_annotation": true, "class_declaration": true},
	lang.TSX:        {"interface_declaration": true, "type_alias_declaration": true, "type_annotation": true, "class_declaration": true},
	lang.Python:     {"class_definition": true},
}

var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true, "def": true,
	"default": true, "defer": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "fallthrough": true, "finally": true,
	"fn": true, "for": true, "from": true, "func": true, "function": true,
	"if": true, "impl": true, "import": true, "in": true, "include": true,
	"interface": true, "let": true, "loop": true, "match": true, "mod": true,
	"module": true, "mut": true, "namespace": true, "new": true, "package": true,
	"pub": true, "raise": true, "return": true, "struct": true, "switch": true,
	"trait": true, "try": true, "type": true, "use": true, "var": true,
	"while": true, "with": true, "yield": true,
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, "<=": true,
	">": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "~": true, "->": true,
	"=>": true, "::": true, ":": true, ";": true, ",": true,
	".": true, "?": true, "(": true, ")": true, "[": true,
	"]": true, "{": true, "}": true,
}
