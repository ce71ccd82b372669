package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"matchline/internal/span"
	"matchline/internal/style"

	"gopkg.in/yaml.v3"
)

// StylePatch is the file form of a style.Style.
type StylePatch struct {
	Fg     string   `yaml:"fg"`
	Bg     string   `yaml:"bg"`
	Add    []string `yaml:"add"`
	Remove []string `yaml:"remove"`
}

func (p StylePatch) Style() (style.Style, error) {
	add, err := ParseModifiers(p.Add)
	if err != nil {
		return style.Style{}, err
	}
	sub, err := ParseModifiers(p.Remove)
	if err != nil {
		return style.Style{}, err
	}
	return style.New().Fg(p.Fg).Bg(p.Bg).AddModifier(add).RemoveModifier(sub), nil
}

type Config struct {
	Theme         string        `yaml:"theme"`
	HelpStyle     string        `yaml:"help_style"`
	Ellipsis      *string       `yaml:"ellipsis"`
	Matched       StylePatch    `yaml:"matched"`
	Unmatched     StylePatch    `yaml:"unmatched"`
	EllipsisStyle StylePatch    `yaml:"ellipsis_style"`
	Debounce      time.Duration `yaml:"debounce"`
	CacheSize     int           `yaml:"cache_size"`
	Preview       bool          `yaml:"preview"`
}

const DefaultEllipsis = "…"

func Default() Config {
	ellipsis := DefaultEllipsis
	return Config{
		Theme:     "nord",
		HelpStyle: "dark",
		Ellipsis:  &ellipsis,
		Matched:   StylePatch{Add: []string{"bold", "underline"}},
		Debounce:  35 * time.Millisecond,
		CacheSize: 4096,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Debounce < 0 {
		return errors.New("debounce must be >= 0")
	}
	if c.CacheSize <= 0 {
		return errors.New("cache_size must be > 0")
	}
	for name, p := range map[string]StylePatch{"matched": c.Matched, "unmatched": c.Unmatched, "ellipsis_style": c.EllipsisStyle} {
		if _, err := p.Style(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (c Config) EllipsisText() string {
	if c.Ellipsis == nil {
		return DefaultEllipsis
	}
	return *c.Ellipsis
}

// Highlight builds the highlighter settings. Elide is left to the caller.
func (c Config) Highlight() (span.HighlightConfig, error) {
	matched, err := c.Matched.Style()
	if err != nil {
		return span.HighlightConfig{}, fmt.Errorf("matched: %w", err)
	}
	unmatched, err := c.Unmatched.Style()
	if err != nil {
		return span.HighlightConfig{}, fmt.Errorf("unmatched: %w", err)
	}
	return span.HighlightConfig{
		Matched:   matched,
		Unmatched: unmatched,
		Ellipsis:  c.EllipsisText(),
	}, nil
}

// ParseModifiers maps names such as "bold" or "Underline" to modifiers.
func ParseModifiers(names []string) (style.Modifier, error) {
	var out style.Modifier
	for _, name := range names {
		m, ok := style.ModifierByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		out |= m
	}
	return out, nil
}
