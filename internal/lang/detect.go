// Package lang maps files to language tags. Detection is a pure extension
// lookup with a shebang sniff as fallback; it has no side effects and never
// fails — anything unrecognized maps to Unknown.
package lang

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Language is a detected language tag.
type Language string

// Languages with full parsing support.
const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	Ruby       Language = "ruby"
	Rust       Language = "rust"
	C          Language = "c"
	PHP        Language = "php"
)

// Languages recognized by extension but not parseable. Requests for these
// fail explicitly with an unsupported-language error instead of silently
// degrading.
const (
	Go       Language = "go"
	JSON     Language = "json"
	SQL      Language = "sql"
	Markdown Language = "markdown"
	YAML     Language = "yaml"
	HTML     Language = "html"
	CSS      Language = "css"
	Shell    Language = "shell"
	Unknown  Language = "unknown"
)

var byExtension = map[string]Language{
	".ts":   TypeScript,
	".tsx":  TypeScript,
	".mts":  TypeScript,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".py":   Python,
	".pyi":  Python,
	".java": Java,
	".rb":   Ruby,
	".rake": Ruby,
	".rs":   Rust,
	".c":    C,
	".h":    C,
	".php":  PHP,
	".go":   Go,
	".json": JSON,
	".sql":  SQL,
	".md":   Markdown,
	".yaml": YAML,
	".yml":  YAML,
	".html": HTML,
	".css":  CSS,
	".sh":   Shell,
	".bash": Shell,
}

var byInterpreter = map[string]Language{
	"python":  Python,
	"python3": Python,
	"node":    JavaScript,
	"ruby":    Ruby,
	"php":     PHP,
	"sh":      Shell,
	"bash":    Shell,
}

// Detect returns the language tag for a file path, optionally sniffing
// content (shebang line) when the extension is unmapped. Content may be nil.
func Detect(path string, content []byte) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if language, ok := byExtension[ext]; ok {
		return language
	}
	if language := sniffShebang(content); language != Unknown {
		return language
	}
	return Unknown
}

// sniffShebang inspects the first line for a "#!" interpreter reference.
func sniffShebang(content []byte) Language {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return Unknown
	}
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		line = content[:idx]
	}
	fields := strings.Fields(string(line[2:]))
	if len(fields) == 0 {
		return Unknown
	}
	interpreter := filepath.Base(fields[0])
	if interpreter == "env" && len(fields) > 1 {
		interpreter = filepath.Base(fields[1])
	}
	// Strip trailing version digits ("python3.12" -> "python3").
	if language, ok := byInterpreter[interpreter]; ok {
		return language
	}
	trimmed := strings.TrimRight(interpreter, "0123456789.")
	if language, ok := byInterpreter[trimmed]; ok {
		return language
	}
	return Unknown
}

// Parseable reports whether the language has a parser adapter (native or
// external).
func Parseable(language Language) bool {
	switch language {
	case TypeScript, JavaScript, Python, Java, Ruby, Rust, C, PHP:
		return true
	}
	return false
}
