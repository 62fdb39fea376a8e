package main

import (
	"testing"

	"jackpot-go/games/jackpot"
)

func TestLoadGameConfigDefault(t *testing.T) {
	cfg, err := loadGameConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.SpinningMarker != jackpot.DefaultConfig().SpinningMarker {
		t.Errorf("Expected built-in config, got marker '%s'", cfg.SpinningMarker)
	}
}

func TestLoadGameConfigShippedFile(t *testing.T) {
	cfg, err := loadGameConfig("configs/jackpot.yaml")
	if err != nil {
		t.Fatalf("Expected shipped config to load, got %v", err)
	}
	if len(cfg.Symbols) != 7 {
		t.Errorf("Expected 7 symbols, got %d", len(cfg.Symbols))
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	if _, err := loadGameConfig("configs/nope.yaml"); err == nil {
		t.Error("Expected error for a missing file")
	}
}
