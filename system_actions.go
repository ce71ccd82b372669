package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// editorCommand builds the command that opens a candidate in an editor.
// The template may reference {file} {line} {col} and {target}.
func editorCommand(template string, path string, line int, col int) (*exec.Cmd, error) {
	target := fmt.Sprintf("%s:%d", path, line)
	if col > 0 {
		target += fmt.Sprintf(":%d", col)
	}
	name, args, err := buildEditorCommand(template, path, line, max(col, 1), target)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("editor command not found: %s", name)
	}
	return exec.Command(name, args...), nil
}

func buildEditorCommand(template string, file string, line int, col int, target string) (string, []string, error) {
	parts, err := splitCommandLine(strings.TrimSpace(template))
	if err != nil {
		return "", nil, err
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("editor command is empty")
	}

	repl := map[string]string{
		"{file}":   file,
		"{line}":   fmt.Sprintf("%d", line),
		"{col}":    fmt.Sprintf("%d", col),
		"{target}": target,
	}

	for i := range parts {
		for k, v := range repl {
			parts[i] = strings.ReplaceAll(parts[i], k, v)
		}
	}

	return parts[0], parts[1:], nil
}

func splitCommandLine(input string) ([]string, error) {
	var parts []string
	var current strings.Builder

	tokenActive := false
	inSingle := false
	inDouble := false

	flush := func() {
		if !tokenActive {
			return
		}
		parts = append(parts, current.String())
		current.Reset()
		tokenActive = false
	}

	for _, r := range input {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
				tokenActive = true
				continue
			}
			inSingle = !inSingle
			tokenActive = true
		case '"':
			if inSingle {
				current.WriteRune(r)
				tokenActive = true
				continue
			}
			inDouble = !inDouble
			tokenActive = true
		case ' ', '\t', '\n', '\r':
			if inSingle || inDouble {
				current.WriteRune(r)
				tokenActive = true
				continue
			}
			flush()
		default:
			current.WriteRune(r)
			tokenActive = true
		}
	}

	if inSingle || inDouble {
		return nil, fmt.Errorf("editor command has unclosed quote")
	}

	flush()
	return parts, nil
}

func copyToClipboard(s string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found (install wl-copy, xclip, or xsel)")
	}
	return clipboard.WriteAll(s)
}
