package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"matchline/internal/candidate"
	"matchline/internal/config"
	"matchline/internal/span"
	"matchline/internal/syntax"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

type options struct {
	Files     []string
	Follow    bool
	Root      string
	Pattern   string
	Excludes  []string
	NoIgnore  bool
	Preview   bool
	Debounce  time.Duration
	EditorCmd string
	HelpStyle string
	LogFile   string
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "matchline: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	var excludes stringList
	configPath := flag.String("config", "", "YAML config file")
	theme := flag.String("theme", "", "color theme (for example: nord, dracula, monokai, github, solarized-dark)")
	ellipsis := flag.String("ellipsis", "", "text drawn where a line is cut (overrides config)")
	debounceMs := flag.Int("debounce-ms", -1, "query debounce in milliseconds (overrides config)")
	flag.BoolVar(&opts.Follow, "follow", false, "keep reading files as they grow")
	flag.StringVar(&opts.Root, "root", ".", "search root for -pattern")
	flag.StringVar(&opts.Pattern, "pattern", "", "ripgrep regex; lists matches under -root instead of reading files")
	flag.Var(&excludes, "exclude", "glob excluded from -pattern search (repeatable)")
	flag.BoolVar(&opts.NoIgnore, "no-ignore", false, "disable rg ignore files (.gitignore/.ignore/.rgignore)")
	flag.BoolVar(&opts.Preview, "preview", false, "show preview pane")
	flag.StringVar(&opts.EditorCmd, "editor-cmd", "", "open the selection with this command, supports {file} {line} {col} {target}")
	flag.StringVar(&opts.LogFile, "log-file", "", "write debug log to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *ellipsis != "" {
		cfg.Ellipsis = ellipsis
	}
	if *debounceMs >= 0 {
		cfg.Debounce = time.Duration(*debounceMs) * time.Millisecond
	}
	opts.Debounce = cfg.Debounce
	opts.HelpStyle = cfg.HelpStyle
	opts.Preview = opts.Preview || cfg.Preview
	opts.Excludes = excludes
	opts.Files = flag.Args()

	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "matchline")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := SetTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	if opts.Pattern != "" {
		absRoot, err := filepath.Abs(opts.Root)
		if err != nil {
			return fmt.Errorf("resolve root: %w", err)
		}
		opts.Root = absRoot
	}

	rows, err := newRowRenderer(cfg)
	if err != nil {
		return err
	}

	producerCfg := candidate.ProducerConfig{
		Files:    opts.Files,
		Follow:   opts.Follow,
		Pattern:  opts.Pattern,
		Root:     opts.Root,
		Excludes: opts.Excludes,
		NoIgnore: opts.NoIgnore,
	}
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if readsStdin(producerCfg) {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("no input: pass files, -pattern, or pipe lines to stdin")
		}
		producerCfg.Stdin = os.Stdin
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer tty.Close()
		programOpts = append(programOpts, tea.WithInput(tty))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out, done := candidate.StartProducer(ctx, producerCfg)

	final, err := tea.NewProgram(newModel(opts, out, done, rows), append(programOpts, tea.WithOutput(os.Stderr))...).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.selection != "" {
		fmt.Println(m.selection)
	}
	return nil
}

func readsStdin(cfg candidate.ProducerConfig) bool {
	if cfg.Pattern != "" {
		return false
	}
	if len(cfg.Files) == 0 {
		return true
	}
	for _, f := range cfg.Files {
		if f == "-" {
			return true
		}
	}
	return false
}

func newRowRenderer(cfg config.Config) (rowRenderer, error) {
	hc, err := cfg.Highlight()
	if err != nil {
		return rowRenderer{}, err
	}
	ellipsisStyle, err := cfg.EllipsisStyle.Style()
	if err != nil {
		return rowRenderer{}, fmt.Errorf("ellipsis_style: %w", err)
	}
	return rowRenderer{
		tokenizer: syntax.NewTokenizer(cfg.CacheSize),
		palette:   appTheme,
		highlight: hc,
		ellipsis:  span.Styled(cfg.EllipsisText(), ellipsisStyle),
	}, nil
}
