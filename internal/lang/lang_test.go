package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want ID
	}{
		{"main.go", Go},
		{"src/lib.rs", Rust},
		{"a/b/App.TSX", TSX},
		{"Cargo.toml", TOML},
		{"notes.txt", Plain},
		{"", Plain},
		{"Main.java", ID("java")},
		{"no-extension-here", Plain},
	}

	for _, tc := range tests {
		if got := Detect(tc.path); got != tc.want {
			t.Fatalf("Detect(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestDetectWithShebang(t *testing.T) {
	tests := []struct {
		path string
		line string
		want ID
	}{
		{"script", "#!/usr/bin/env python3", Python},
		{"script", "#!/bin/sh", Bash},
		{"script", "#!/usr/bin/env sh", Bash},
		{"script", "#!/usr/bin/env node", JavaScript},
		{"script", "echo hi", Plain},
		{"main.go", "#!/usr/bin/env python3", Go},
	}

	for _, tc := range tests {
		if got := DetectWithShebang(tc.path, tc.line); got != tc.want {
			t.Fatalf("DetectWithShebang(%q, %q) = %q, want %q", tc.path, tc.line, got, tc.want)
		}
	}
}
