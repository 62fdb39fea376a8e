package jackpot

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		slots [SlotCount]string
		want  WinClass
	}{
		{"all distinct", [SlotCount]string{cherry, lemon, bell, star, "🎲"}, Lose},
		{"one pair", [SlotCount]string{cherry, cherry, bell, star, "🎲"}, Match2},
		{"two pairs", [SlotCount]string{cherry, cherry, bell, bell, star}, Match2},
		{"three scattered", [SlotCount]string{cherry, lemon, cherry, bell, cherry}, Match3},
		{"full house", [SlotCount]string{cherry, cherry, cherry, bell, bell}, Match3},
		{"four", [SlotCount]string{star, star, lemon, star, star}, Match4},
		{"five", [SlotCount]string{bell, bell, bell, bell, bell}, Jackpot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.slots); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.slots, got, tt.want)
			}
		})
	}
}

func TestWinClassMultiplicity(t *testing.T) {
	classes := []WinClass{Lose, Match2, Match3, Match4, Jackpot}
	for i, c := range classes {
		if c.Multiplicity() != i+1 {
			t.Errorf("Expected %s to stand for %d equal symbols, got %d", c, i+1, c.Multiplicity())
		}
	}
}

func TestResolveSettlesOneReel(t *testing.T) {
	cfg := testConfig()
	snap, err := NewExtractor(cfg).Extract(startedGame(t, cfg))
	if err != nil {
		t.Fatalf("Expected started game to extract, got %v", err)
	}

	out, err := NewResolver(cfg, &scriptedSource{picks: []int{2}}).Resolve(snap, 3)
	if err != nil {
		t.Fatalf("Expected reel 4 to resolve, got %v", err)
	}
	if out.Symbol != bell || out.Next.Slots[3] != bell {
		t.Errorf("Expected reel 4 to hold %s, got %q", bell, out.Next.Slots[3])
	}
	if out.Next.SpinningCount() != SlotCount-1 {
		t.Errorf("Expected %d spinning reels, got %d", SlotCount-1, out.Next.SpinningCount())
	}
	if out.Terminal {
		t.Error("Expected non-terminal outcome after first reel")
	}
	if snap.Slots[3] != cfg.SpinningMarker {
		t.Error("Expected input snapshot to stay untouched")
	}
	if blockText(t, out.Next.Raw, BlockReels) != blockText(t, snap.Raw, BlockReels) {
		t.Error("Expected resolver to leave the raw message untouched")
	}
}

func TestResolveNotEligible(t *testing.T) {
	cfg := testConfig()
	snap, _ := NewExtractor(cfg).Extract(startedGame(t, cfg))
	res := NewResolver(cfg, &scriptedSource{})

	out, err := res.Resolve(snap, 0)
	if err != nil {
		t.Fatalf("Expected first resolve to succeed, got %v", err)
	}
	if _, err := res.Resolve(out.Next, 0); !errors.Is(err, ErrNotEligible) {
		t.Errorf("Expected ErrNotEligible on repeat, got %v", err)
	}
	for _, idx := range []int{-1, SlotCount} {
		if _, err := res.Resolve(snap, idx); !errors.Is(err, ErrNotEligible) {
			t.Errorf("Expected ErrNotEligible for index %d, got %v", idx, err)
		}
	}
}

func TestResolveJackpotOnLastReel(t *testing.T) {
	cfg := testConfig()
	snap, _ := NewExtractor(cfg).Extract(startedGame(t, cfg))
	src := &scriptedSource{picks: []int{0}}
	res := NewResolver(cfg, src)

	var out *Outcome
	var err error
	for i := 0; i < SlotCount; i++ {
		out, err = res.Resolve(snap, i)
		if err != nil {
			t.Fatalf("Expected reel %d to resolve, got %v", i+1, err)
		}
		if i < SlotCount-1 && out.Terminal {
			t.Fatalf("Expected reel %d to be non-terminal", i+1)
		}
		snap = out.Next
	}
	if !out.Terminal || out.Class != Jackpot {
		t.Errorf("Expected terminal jackpot, got terminal=%v class=%s", out.Terminal, out.Class)
	}
	if src.calls != SlotCount {
		t.Errorf("Expected exactly %d draws, got %d", SlotCount, src.calls)
	}
}
