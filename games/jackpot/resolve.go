package jackpot

import "fmt"

// WinClass is the result tier of a finished game.
type WinClass int

const (
	Lose WinClass = iota + 1
	Match2
	Match3
	Match4
	Jackpot
)

// Multiplicity returns how many equal symbols the class stands for.
func (c WinClass) Multiplicity() int {
	return int(c)
}

func (c WinClass) String() string {
	switch c {
	case Lose:
		return "lose"
	case Match2:
		return "match2"
	case Match3:
		return "match3"
	case Match4:
		return "match4"
	case Jackpot:
		return "jackpot"
	default:
		return fmt.Sprintf("winclass(%d)", int(c))
	}
}

// Classify maps the highest symbol multiplicity of the final reels to a class.
// Order does not matter.
func Classify(slots [SlotCount]string) WinClass {
	counts := make(map[string]int, SlotCount)
	best := 0
	for _, s := range slots {
		counts[s]++
		if counts[s] > best {
			best = counts[s]
		}
	}
	return WinClass(best)
}

// Outcome is the result of resolving one reel.
type Outcome struct {
	Next     *Snapshot
	Index    int
	Symbol   string
	Terminal bool
	Class    WinClass
}

// Resolver settles spinning reels.
type Resolver struct {
	cfg Config
	src Source
}

// NewResolver creates a resolver drawing from src.
func NewResolver(cfg Config, src Source) *Resolver {
	return &Resolver{cfg: cfg, src: src}
}

// Resolve settles reel idx of snap. snap itself is never modified. A reel
// that is already settled returns ErrNotEligible, which makes repeated
// delivery of the same click harmless.
func (r *Resolver) Resolve(snap *Snapshot, idx int) (*Outcome, error) {
	if !snap.IsSpinning(idx) {
		return nil, fmt.Errorf("reel %d: %w", idx+1, ErrNotEligible)
	}

	symbol := pick(r.src, r.cfg.Symbols)
	next := snap.Clone()
	next.Slots[idx] = symbol
	next.Tokens[next.positions[idx]] = symbol

	out := &Outcome{Next: next, Index: idx, Symbol: symbol}
	if next.SpinningCount() == 0 {
		out.Terminal = true
		out.Class = Classify(next.Slots)
	}
	return out, nil
}
