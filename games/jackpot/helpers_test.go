package jackpot

import (
	"strings"
	"testing"
)

const (
	cherry = "🍒"
	lemon  = "🍋"
	bell   = "🔔"
	star   = "⭐"

	inviteeID = "111"
	playerID  = "222"
	otherID   = "333"
)

// scriptedSource returns its picks in order, modulo n.
type scriptedSource struct {
	picks []int
	calls int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.picks) == 0 {
		s.calls++
		return 0
	}
	v := s.picks[s.calls%len(s.picks)] % n
	s.calls++
	return v
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Symbols = []string{cherry, lemon, bell, star}
	return cfg
}

// startedGame returns a message where playerID has pulled SPIN.
func startedGame(t *testing.T, cfg Config) Message {
	t.Helper()
	r := NewRouter(cfg, &scriptedSource{})
	res, err := r.Handle(playerID, ActionSpin, r.NewGame(inviteeID))
	if err != nil {
		t.Fatalf("Expected spin to start the game, got %v", err)
	}
	return res.Renders[0]
}

func blockText(t *testing.T, msg Message, id string) string {
	t.Helper()
	i := msg.Find(id)
	if i < 0 {
		t.Fatalf("Expected block %q in message", id)
	}
	return msg.Blocks[i].Text
}

func reelTokens(cfg Config, text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		if isSymbolShaped(tok) && !cfg.isDecoration(tok) {
			out = append(out, tok)
		}
	}
	return out
}
