package jackpot

import (
	"regexp"
	"strings"
	"unicode"
)

// SlotCount is the number of reels on the play surface.
const SlotCount = 5

// Phase is the lifecycle position of a game, derived from its snapshot.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseIdle
	PhaseSpinning
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseTerminal:
		return "terminal"
	default:
		return "not_started"
	}
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	mentionRe     = regexp.MustCompile(`^<@!?([A-Za-z0-9]+)>$`)
	customEmojiRe = regexp.MustCompile(`^<a?:[A-Za-z0-9_~]+:\d+>$`)
	shortcodeRe   = regexp.MustCompile(`^:[A-Za-z0-9_+\-]+:$`)
)

// Snapshot is a game reconstructed from its rendered message. It lives for
// exactly one action.
type Snapshot struct {
	OwnerID string
	Slots   [SlotCount]string

	// Tokens is the reels text split on whitespace with the whitespace runs
	// kept, so a single slot can be replaced in place.
	Tokens []string

	// Raw is the message the snapshot was parsed from.
	Raw Message

	positions [SlotCount]int
	spinning  string
}

// SpinningCount returns how many reels still hold the spinning marker.
func (s *Snapshot) SpinningCount() int {
	n := 0
	for _, sym := range s.Slots {
		if sym == s.spinning {
			n++
		}
	}
	return n
}

// IsSpinning reports whether reel i is unresolved.
func (s *Snapshot) IsSpinning(i int) bool {
	return i >= 0 && i < SlotCount && s.Slots[i] == s.spinning
}

// Phase derives the lifecycle position.
func (s *Snapshot) Phase() Phase {
	switch n := s.SpinningCount(); {
	case s.OwnerID == "":
		return PhaseNotStarted
	case n == SlotCount:
		return PhaseIdle
	case n == 0:
		return PhaseTerminal
	default:
		return PhaseSpinning
	}
}

// Clone returns a copy that can be mutated without touching s.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Tokens = append([]string(nil), s.Tokens...)
	out.Raw = s.Raw.Clone()
	return &out
}

// Extractor reads snapshots out of rendered messages.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor for the given machine.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractOwner returns the id of the player bound to the game.
func (e *Extractor) ExtractOwner(msg Message) (string, error) {
	i := msg.Find(BlockPlayer)
	if i < 0 {
		return "", ErrOwnerNotBound
	}
	for _, tok := range strings.Fields(msg.Blocks[i].Text) {
		if m := mentionRe.FindStringSubmatch(tok); m != nil {
			return m[1], nil
		}
	}
	return "", ErrOwnerNotBound
}

// Extract parses msg into a snapshot. An unbound owner is not an error here;
// it shows up as PhaseNotStarted.
func (e *Extractor) Extract(msg Message) (*Snapshot, error) {
	i := msg.Find(BlockReels)
	if i < 0 {
		return nil, malformed("no %s block", BlockReels)
	}
	block := msg.Blocks[i]
	if block.IsControlRow() {
		return nil, malformed("%s block holds controls", BlockReels)
	}

	snap := &Snapshot{
		Tokens:   splitKeepSpace(block.Text),
		Raw:      msg,
		spinning: e.cfg.SpinningMarker,
	}
	n := 0
	for pos, tok := range snap.Tokens {
		if !isSymbolShaped(tok) || e.cfg.isDecoration(tok) {
			continue
		}
		if n == SlotCount {
			return nil, malformed("more than %d reels", SlotCount)
		}
		if tok == e.cfg.IdleMarker {
			tok = e.cfg.SpinningMarker
		}
		snap.Slots[n] = tok
		snap.positions[n] = pos
		n++
	}
	if n != SlotCount {
		return nil, malformed("found %d reels, want %d", n, SlotCount)
	}

	owner, err := e.ExtractOwner(msg)
	if err == nil {
		snap.OwnerID = owner
	}
	return snap, nil
}

// splitKeepSpace splits s on whitespace and keeps each whitespace run as its
// own token, so joining the result gives s back.
func splitKeepSpace(s string) []string {
	var out []string
	last := 0
	for _, loc := range whitespaceRe.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, s[last:loc[0]])
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}

func isSymbolShaped(tok string) bool {
	if customEmojiRe.MatchString(tok) || shortcodeRe.MatchString(tok) {
		return true
	}
	hasSymbol := false
	for _, r := range tok {
		switch {
		case unicode.Is(unicode.So, r):
			hasSymbol = true
		case unicode.Is(unicode.Sk, r), r == '\u200d', r == '\ufe0f', r == '\u20e3':
		default:
			return false
		}
	}
	return hasSymbol
}
