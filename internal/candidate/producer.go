package candidate

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"matchline/internal/lang"

	"github.com/nxadm/tail"
)

type candidateLocation struct {
	file string
	line int
	col  int
}

type emitter struct {
	ctx context.Context
	out chan<- Candidate

	mu sync.Mutex
	id int
	// seen is nil unless duplicate locations must be dropped.
	seen map[candidateLocation]struct{}
}

func (e *emitter) emit(c Candidate) error {
	e.mu.Lock()
	if e.seen != nil {
		loc := candidateLocation{file: c.File, line: c.Line, col: c.Col}
		if _, exists := e.seen[loc]; exists {
			e.mu.Unlock()
			return nil
		}
		e.seen[loc] = struct{}{}
	}
	e.id++
	c.ID = e.id
	e.mu.Unlock()

	select {
	case e.out <- c:
		return nil
	case <-e.ctx.Done():
		return e.ctx.Err()
	}
}

// StartProducer streams candidates until the source is exhausted, ctx is
// cancelled or a read fails. The error channel receives exactly one value
// (nil on success) and is then closed.
func StartProducer(ctx context.Context, cfg ProducerConfig) (<-chan Candidate, <-chan error) {
	out := make(chan Candidate, 4096)
	done := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(done)

		e := &emitter{ctx: ctx, out: out}

		var err error
		switch {
		case strings.TrimSpace(cfg.Pattern) != "":
			e.seen = make(map[candidateLocation]struct{}, 4096)
			err = runRGPass(ctx, cfg.Root, rgArgs(cfg, strings.TrimSpace(cfg.Pattern)), func(file string, line int, col int, text string) error {
				clean := filepath.Clean(file)
				return e.emit(Candidate{File: clean, Line: line, Col: col, Text: text, Lang: lang.Detect(clean)})
			})
			if err != nil {
				err = fmt.Errorf("search %q: %w", cfg.Pattern, err)
			}
		case cfg.Follow:
			err = followFiles(ctx, cfg.Files, e)
		default:
			err = readFiles(cfg, e)
		}

		if errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- err
	}()

	return out, done
}

func readFiles(cfg ProducerConfig, e *emitter) error {
	files := cfg.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	for _, path := range files {
		if path == "-" {
			if cfg.Stdin == nil {
				return errors.New("read stdin: no input")
			}
			if err := scanLines(cfg.Stdin, "", e); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		err = scanLines(f, filepath.Clean(path), e)
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	return nil
}

func scanLines(r io.Reader, file string, e *emitter) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 128*1024), 8*1024*1024)

	id := lang.Plain
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 && file != "" {
			id = lang.DetectWithShebang(file, text)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := e.emit(Candidate{File: file, Line: lineNo, Text: text, Lang: id}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func followFiles(ctx context.Context, files []string, e *emitter) error {
	if len(files) == 0 {
		return errors.New("follow: no files provided")
	}

	tails := make([]*tail.Tail, 0, len(files))
	defer func() {
		for _, t := range tails {
			_ = t.Stop()
			t.Cleanup()
		}
	}()
	for _, file := range files {
		if file == "-" {
			return errors.New("follow: cannot follow stdin")
		}
		cfg := tail.Config{Follow: true, ReOpen: true, Logger: tail.DiscardingLogger, MustExist: true}
		t, err := tail.TailFile(file, cfg)
		if err != nil {
			return fmt.Errorf("tail %s: %w", file, err)
		}
		tails = append(tails, t)
	}

	errs := make(chan error, len(tails))
	var wg sync.WaitGroup
	for _, t := range tails {
		wg.Add(1)
		go func(t *tail.Tail) {
			defer wg.Done()
			if err := followOne(ctx, t, e); err != nil {
				errs <- err
			}
		}(t)
	}
	wg.Wait()
	close(errs)
	return <-errs
}

func followOne(ctx context.Context, t *tail.Tail, e *emitter) error {
	file := filepath.Clean(t.Filename)
	id := lang.Detect(file)
	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return fmt.Errorf("tail %s: %w", file, line.Err)
			}
			lineNo++
			text := strings.TrimRight(line.Text, "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			if err := e.emit(Candidate{File: file, Line: lineNo, Text: text, Lang: id}); err != nil {
				return err
			}
		}
	}
}

func runRGPass(ctx context.Context, root string, args []string, onMatch func(file string, line int, col int, text string) error) error {
	cmd := exec.CommandContext(ctx, "rg", args...)
	cmd.Dir = root

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open rg stdout: %w", err)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start rg: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 128*1024), 8*1024*1024)

	for scanner.Scan() {
		file, line, col, text, ok := parseRGVimgrepLine(scanner.Bytes())
		if !ok {
			continue
		}
		if err := onMatch(file, line, col, text); err != nil {
			_ = cmd.Wait()
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read rg output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("rg failed: %s", msg)
		}
		return fmt.Errorf("rg failed: %w", err)
	}

	return nil
}

func rgArgs(cfg ProducerConfig, pattern string) []string {
	args := []string{
		"--vimgrep",
		"--null",
		"--color", "never",
		"--no-heading",
		"--smart-case",
	}
	if cfg.NoIgnore {
		args = append(args, "--no-ignore")
	}
	for _, glob := range cfg.Excludes {
		args = append(args, "--glob", "!"+glob)
	}
	return append(args, "--", pattern, ".")
}

// parseRGVimgrepLine splits "file\x00line:col:text" as written by
// rg --vimgrep --null.
func parseRGVimgrepLine(raw []byte) (file string, lineNo int, colNo int, text string, ok bool) {
	nul := bytes.IndexByte(raw, 0)
	if nul <= 0 || nul >= len(raw)-1 {
		return "", 0, 0, "", false
	}

	file = string(raw[:nul])
	rest := raw[nul+1:]

	lineNo, rest, ok = parsePositiveIntField(rest)
	if !ok {
		return "", 0, 0, "", false
	}
	colNo, rest, ok = parsePositiveIntField(rest)
	if !ok {
		return "", 0, 0, "", false
	}

	return file, lineNo, colNo, strings.TrimRight(string(rest), "\r"), true
}

func parsePositiveIntField(raw []byte) (int, []byte, bool) {
	sep := bytes.IndexByte(raw, ':')
	if sep <= 0 {
		return 0, nil, false
	}

	value := 0
	for _, b := range raw[:sep] {
		if b < '0' || b > '9' {
			return 0, nil, false
		}
		value = value*10 + int(b-'0')
	}
	if value <= 0 {
		return 0, nil, false
	}

	return value, raw[sep+1:], true
}
