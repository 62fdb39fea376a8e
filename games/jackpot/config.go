package jackpot

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Prize is a reward line for the 2x and 3x tiers.
type Prize struct {
	Item  string `yaml:"item"`
	Emoji string `yaml:"emoji"`
}

// Config holds the symbol alphabet and all copy used by the machine.
type Config struct {
	// SpinningMarker marks an unresolved reel once the game has started.
	SpinningMarker string `yaml:"spinning_marker"`

	// IdleMarker is the non-animated variant shown before anyone pulls SPIN.
	IdleMarker string `yaml:"idle_marker"`

	// Symbols is the resolvable alphabet.
	Symbols []string `yaml:"symbols"`

	// Decorations are symbol-shaped border tokens inside the reels row.
	Decorations []string `yaml:"decorations"`

	Title            string   `yaml:"title"`
	LegendSymbol     string   `yaml:"legend_symbol"`
	LegendPrizes     []string `yaml:"legend_prizes"`
	LoseLines        []string `yaml:"lose_lines"`
	TwoMatchPrizes   []Prize  `yaml:"two_match_prizes"`
	ThreeMatchPrizes []Prize  `yaml:"three_match_prizes"`
	FourMatchMessage string   `yaml:"four_match_message"`
	JackpotMessage   string   `yaml:"jackpot_message"`

	// RemovalDelay is how long a losing message stays visible.
	RemovalDelay time.Duration `yaml:"removal_delay"`
}

// DefaultConfig returns the stock machine.
func DefaultConfig() Config {
	return Config{
		SpinningMarker: "🌀",
		IdleMarker:     "❔",
		Symbols:        []string{"🍒", "🍋", "🔔", "⭐", "💰", "🍀", "🎲"},
		Decorations:    []string{"💠", "♦️"},
		Title:          "🪙 Are you feeling lucky?",
		LegendSymbol:   "💵",
		LegendPrizes:   []string{"$100", "$75", "free lunch", "a surprise"},
		LoseLines: []string{
			"the house always wins",
			"not even close",
			"maybe try the claw machine instead",
			"the reels have spoken",
		},
		TwoMatchPrizes: []Prize{
			{Item: "a coffee on us", Emoji: "☕"},
			{Item: "a sticker pack", Emoji: "🏷️"},
			{Item: "a mystery snack", Emoji: "🍪"},
		},
		ThreeMatchPrizes: []Prize{
			{Item: "a free lunch with a teammate", Emoji: "🥪"},
			{Item: "a team pizza", Emoji: "🍕"},
		},
		FourMatchMessage: "🎉 **4 in a row!** $75 is headed your way. Check your DMs!",
		JackpotMessage:   "🤑 **JACKPOT!** $100 is headed your way. Drinks are on you!",
		RemovalDelay:     15 * time.Second,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read jackpot config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse jackpot config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the pools that feed a random choice and the markers.
func (c Config) Validate() error {
	var errs []error
	if c.SpinningMarker == "" || c.IdleMarker == "" {
		errs = append(errs, errors.New("spinning and idle markers are required"))
	}
	if c.SpinningMarker == c.IdleMarker {
		errs = append(errs, errors.New("spinning and idle markers must differ"))
	}
	for _, m := range []string{c.SpinningMarker, c.IdleMarker} {
		if m != "" && !isSymbolShaped(m) {
			errs = append(errs, fmt.Errorf("marker %q must be an emoji", m))
		}
	}
	if len(c.Symbols) == 0 {
		errs = append(errs, errors.New("symbols must not be empty"))
	}
	for _, s := range c.Symbols {
		if !isSymbolShaped(s) {
			errs = append(errs, fmt.Errorf("symbol %q must be an emoji", s))
		}
		if s == c.SpinningMarker || s == c.IdleMarker || c.isDecoration(s) {
			errs = append(errs, fmt.Errorf("symbol %q collides with a marker or decoration", s))
		}
	}
	if len(c.LoseLines) == 0 {
		errs = append(errs, errors.New("lose_lines must not be empty"))
	}
	if len(c.TwoMatchPrizes) == 0 {
		errs = append(errs, errors.New("two_match_prizes must not be empty"))
	}
	if len(c.ThreeMatchPrizes) == 0 {
		errs = append(errs, errors.New("three_match_prizes must not be empty"))
	}
	if c.RemovalDelay <= 0 {
		errs = append(errs, errors.New("removal_delay must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) isDecoration(token string) bool {
	for _, d := range c.Decorations {
		if d == token {
			return true
		}
	}
	return false
}
