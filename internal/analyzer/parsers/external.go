package parsers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/mvp-joe/project-prism/internal/analyzer/extraction"
	"github.com/mvp-joe/project-prism/internal/analyzer/tree"
	"github.com/mvp-joe/project-prism/internal/lang"
)

// CommandFunc builds the subprocess for one external parse invocation.
// Injectable so tests can substitute a stub command.
type CommandFunc func(ctx context.Context, filePath string) (*exec.Cmd, error)

// ExternalParser delegates parsing to an out-of-process helper that
// pre-extracts symbols and prints them as JSON on stdout. Each call is a
// single bounded attempt: on timeout the process gets a graceful
// termination signal, then a force kill after the grace period. The call
// always resolves; it never hangs on a wedged subprocess.
type ExternalParser struct {
	lang    lang.Language
	command CommandFunc
	timeout time.Duration
	grace   time.Duration
}

// NewExternalParser creates an external parser with the given command
// factory and timeout bounds.
func NewExternalParser(tag lang.Language, command CommandFunc, timeout, grace time.Duration) *ExternalParser {
	return &ExternalParser{
		lang:    tag,
		command: command,
		timeout: timeout,
		grace:   grace,
	}
}

// helperOutput is the JSON shape the helper prints on stdout.
type helperOutput struct {
	Symbols []helperSymbol `json:"symbols"`
	Imports []string       `json:"imports"`
	Exports []string       `json:"exports"`
	Errors  []helperError  `json:"errors"`
}

type helperSymbol struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	StartRow int            `json:"start_row"`
	StartCol int            `json:"start_col"`
	EndRow   int            `json:"end_row"`
	EndCol   int            `json:"end_col"`
	Children []helperSymbol `json:"children"`
}

type helperError struct {
	Message string `json:"message"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// Parse runs the helper on the file path. The source bytes are not passed
// to the subprocess; the helper reads the file itself, so both sides see
// the same content the engine hashed.
func (p *ExternalParser) Parse(ctx context.Context, filePath string, source []byte) *ParseResult {
	cmd, err := p.command(ctx, filePath)
	if err != nil {
		return failure(p.lang, extraction.ErrSpawn,
			fmt.Sprintf("failed to build external parser command: %v", err))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return failure(p.lang, extraction.ErrSpawn,
			fmt.Sprintf("failed to start external parser: %v", err))
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case err = <-done:
		// Exited within the timeout.
	case <-ctx.Done():
		p.terminate(cmd, done)
		return failure(p.lang, extraction.ErrTimeout,
			fmt.Sprintf("external parser canceled: %v", ctx.Err()))
	case <-timer.C:
		p.terminate(cmd, done)
		return failure(p.lang, extraction.ErrTimeout,
			fmt.Sprintf("external parser exceeded %s timeout", p.timeout))
	}

	if err != nil {
		message := fmt.Sprintf("external parser failed: %v", err)
		if stderrText := strings.TrimSpace(stderr.String()); stderrText != "" {
			message += ": " + stderrText
		}
		return failure(p.lang, extraction.ErrSubprocess, message)
	}

	var output helperOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return failure(p.lang, extraction.ErrJSONParse,
			fmt.Sprintf("malformed external parser output: %v", err))
	}

	return p.adapt(&output)
}

// terminate drives the escalation state machine: a graceful signal first,
// a force kill if the process is still alive after the grace period. Waits
// for the process to be reaped either way.
func (p *ExternalParser) terminate(cmd *exec.Cmd, done <-chan error) {
	if cmd.Process == nil {
		return
	}

	_ = cmd.Process.Signal(syscall.SIGTERM)

	graceTimer := time.NewTimer(p.grace)
	defer graceTimer.Stop()

	select {
	case <-done:
	case <-graceTimer.C:
		_ = cmd.Process.Kill()
		<-done
	}
}

// adapt converts helper output into the uniform ParseResult shape. The
// external path attaches pre-extracted symbols directly; there is no
// generic tree.
func (p *ExternalParser) adapt(output *helperOutput) *ParseResult {
	pre := &extraction.FileSymbols{
		Imports: output.Imports,
		Exports: output.Exports,
	}
	for i := range output.Symbols {
		pre.Symbols = append(pre.Symbols, adaptSymbol(&output.Symbols[i]))
	}

	var errors []extraction.ParseError
	for _, e := range output.Errors {
		errors = append(errors, extraction.ParseError{
			Type:          extraction.ErrParse,
			Message:       e.Message,
			StartPosition: tree.Point{Row: e.Row, Column: e.Col},
			EndPosition:   tree.Point{Row: e.Row, Column: e.Col},
		})
	}

	return &ParseResult{
		Success:  true,
		Language: p.lang,
		Pre:      pre,
		Errors:   errors,
	}
}

func adaptSymbol(s *helperSymbol) *extraction.Symbol {
	symbol := &extraction.Symbol{
		Name: s.Name,
		Kind: s.Kind,
		Location: fmt.Sprintf("%d:%d-%d:%d",
			s.StartRow, s.StartCol, s.EndRow, s.EndCol),
	}
	for i := range s.Children {
		symbol.Children = append(symbol.Children, adaptSymbol(&s.Children[i]))
	}
	return symbol
}
