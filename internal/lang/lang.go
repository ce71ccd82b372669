package lang

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// ID names a language. Values other than the constants below are chroma
// lexer names.
type ID string

const (
	Plain      ID = "plain"
	Go         ID = "go"
	Rust       ID = "rust"
	Python     ID = "python"
	JavaScript ID = "javascript"
	TypeScript ID = "typescript"
	TSX        ID = "tsx"
	YAML       ID = "yaml"
	TOML       ID = "toml"
	JSON       ID = "json"
	Bash       ID = "bash"
	C          ID = "c"
	CPP        ID = "cpp"
)

var extMap = map[string]ID{
	".go":    Go,
	".rs":    Rust,
	".py":    Python,
	".js":    JavaScript,
	".jsx":   JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".ts":    TypeScript,
	".tsx":   TSX,
	".yaml":  YAML,
	".yml":   YAML,
	".toml":  TOML,
	".json":  JSON,
	".jsonc": JSON,
	".json5": JSON,
	".sh":    Bash,
	".bash":  Bash,
	".zsh":   Bash,
	".c":     C,
	".h":     C,
	".cpp":   CPP,
	".cc":    CPP,
	".cxx":   CPP,
	".hpp":   CPP,
	".hh":    CPP,
	".txt":   Plain,
	".log":   Plain,
}

var fileMap = map[string]ID{
	".bashrc":           Bash,
	".zshrc":            Bash,
	".gitignore":        Plain,
	"Cargo.toml":        TOML,
	"Cargo.lock":        TOML,
	"package-lock.json": JSON,
	"go.mod":            Go,
	"go.sum":            Plain,
}

// Detect picks a language from a path. Names outside the built-in table
// are resolved through chroma's filename patterns.
func Detect(path string) ID {
	if path == "" {
		return Plain
	}
	base := filepath.Base(path)
	if id, ok := fileMap[base]; ok {
		return id
	}
	ext := strings.ToLower(filepath.Ext(base))
	if id, ok := extMap[ext]; ok {
		return id
	}
	if lexer := lexers.Match(base); lexer != nil {
		return ID(strings.ToLower(lexer.Config().Name))
	}
	return Plain
}

func DetectWithShebang(path string, firstLine string) ID {
	if id := Detect(path); id != Plain {
		return id
	}

	if !strings.HasPrefix(firstLine, "#!") {
		return Plain
	}
	lower := strings.ToLower(firstLine)
	fields := strings.Fields(lower)
	interp := fields[len(fields)-1]
	switch {
	case strings.Contains(lower, "python"):
		return Python
	case strings.Contains(lower, "node"):
		return JavaScript
	case strings.Contains(lower, "bash") || strings.Contains(lower, "zsh") || interp == "sh" || strings.HasSuffix(interp, "/sh"):
		return Bash
	}
	if lexer := lexers.Analyse(firstLine); lexer != nil {
		return ID(strings.ToLower(lexer.Config().Name))
	}
	return Plain
}
