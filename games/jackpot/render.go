package jackpot

import (
	"fmt"
	"strings"
)

const (
	bannerIdle    = "━━━━━━━ **Don't pull these yet!** ━━━━━━━"
	bannerStarted = "━━━━━━━━ **Now pull these!** ━━━━━━━━"
	bannerLose    = "━━━━━━━━━ **Game Over!** ━━━━━━━━━"
	bannerJackpot = "━━━━ 🤑🤑🤑 **JACKPOT** 🤑🤑🤑 ━━━━"
	reelSeparator = "**| | |**"
	leverLabel    = "777"
)

var legendTiers = []string{"**Jackpot:**", "**4x:**", "**3x:**", "**2x:**"}

// Renderer turns snapshots back into messages. Every method returns a new
// message and edits only the regions it owns.
type Renderer struct {
	cfg Config
	src Source
}

// NewRenderer creates a renderer drawing copy from cfg.
func NewRenderer(cfg Config, src Source) *Renderer {
	return &Renderer{cfg: cfg, src: src}
}

// RenderIdle builds the invitation message for inviteeID.
func (r *Renderer) RenderIdle(inviteeID string) Message {
	levers := make([]Control, SlotCount)
	for i, a := range ReelActions {
		sym := r.cfg.Symbols[i%len(r.cfg.Symbols)]
		levers[i] = Control{Action: a, Label: fmt.Sprintf("%s %s %s", sym, leverLabel, sym), Style: StyleSecondary}
	}
	return Message{
		Title: r.cfg.Title,
		Blocks: []Block{
			{ID: BlockLegend, Label: LabelFor(BlockLegend), Text: r.legend()},
			{ID: BlockInvite, Label: LabelFor(BlockInvite), Text: fmt.Sprintf("<@%s> do you want to play a game? Pull the lever ⬇️", inviteeID)},
			{ID: BlockStart, Controls: []Control{{Action: ActionSpin, Label: "🎰  SPIN  🎰", Style: StyleSuccess}}},
			{Text: strings.Repeat("━", 24)},
			{Text: r.border(10)},
			{ID: BlockReels, Label: LabelFor(BlockReels), Text: r.reels()},
			{Text: r.border(10)},
			{ID: BlockBanner, Label: LabelFor(BlockBanner), Text: bannerIdle},
			{ID: BlockLevers, Controls: levers},
			{Text: strings.Repeat("🎉", 12)},
		},
	}
}

// RenderStarted binds actorID as the player: the SPIN control becomes the
// ownership line, the reels start spinning and the banner flips.
func (r *Renderer) RenderStarted(snap *Snapshot, actorID string) Message {
	msg := snap.Raw.Clone()
	player := Block{ID: BlockPlayer, Label: LabelFor(BlockPlayer), Text: fmt.Sprintf("🎮 <@%s> pulled the lever & is now playing.", actorID)}
	if i := msg.Find(BlockStart); i >= 0 {
		msg.Blocks[i] = player
	} else if i := msg.Find(BlockReels); i >= 0 {
		msg.Blocks = append(msg.Blocks[:i], append([]Block{player}, msg.Blocks[i:]...)...)
	}

	if i := msg.Find(BlockReels); i >= 0 {
		tokens := splitKeepSpace(msg.Blocks[i].Text)
		for _, pos := range snap.positions {
			if tokens[pos] == r.cfg.IdleMarker {
				tokens[pos] = r.cfg.SpinningMarker
			}
		}
		msg.Blocks[i].Text = strings.Join(tokens, "")
	}
	if i := msg.Find(BlockBanner); i >= 0 {
		msg.Blocks[i].Text = bannerStarted
	}
	return msg
}

// RenderResolved writes reel idx of next into the play surface and leaves
// every other token as it was.
func (r *Renderer) RenderResolved(next *Snapshot, idx int) Message {
	msg := next.Raw.Clone()
	i := msg.Find(BlockReels)
	if i < 0 || idx < 0 || idx >= SlotCount {
		return msg
	}
	tokens := splitKeepSpace(msg.Blocks[i].Text)
	pos := next.positions[idx]
	if pos < len(tokens) {
		tokens[pos] = next.Slots[idx]
	}
	msg.Blocks[i].Text = strings.Join(tokens, "")
	return msg
}

// RenderTerminal swaps the banner for the result headline and the levers for
// the outcome line.
func (r *Renderer) RenderTerminal(base Message, ownerID string, class WinClass) Message {
	msg := base.Clone()
	if i := msg.Find(BlockBanner); i >= 0 {
		msg.Blocks[i].Text = headline(class)
	}
	outcome := Block{ID: BlockOutcome, Label: LabelFor(BlockOutcome), Text: r.outcomeText(ownerID, class)}
	if i := msg.Find(BlockLevers); i >= 0 {
		msg.Blocks[i] = outcome
	} else {
		msg.Blocks = append(msg.Blocks, outcome)
	}
	return msg
}

func headline(class WinClass) string {
	switch class {
	case Lose:
		return bannerLose
	case Jackpot:
		return bannerJackpot
	default:
		return fmt.Sprintf("━━━━━━━━━ **%d Matches!** ━━━━━━━━━", class.Multiplicity())
	}
}

func (r *Renderer) outcomeText(ownerID string, class WinClass) string {
	switch class {
	case Match2:
		p := pick(r.src, r.cfg.TwoMatchPrizes)
		return fmt.Sprintf("_<@%s> won **%s**! Check your DMs!_ %s", ownerID, p.Item, p.Emoji)
	case Match3:
		p := pick(r.src, r.cfg.ThreeMatchPrizes)
		return fmt.Sprintf("_<@%s> won **%s**! Tag them here!_ %s", ownerID, p.Item, p.Emoji)
	case Match4:
		return r.cfg.FourMatchMessage
	case Jackpot:
		return r.cfg.JackpotMessage
	default:
		line := pick(r.src, r.cfg.LoseLines)
		return fmt.Sprintf("😂 _<@%s> %s. **See ya!**_ 👋", ownerID, line)
	}
}

func (r *Renderer) legend() string {
	lines := make([]string, 0, len(legendTiers))
	for i, tier := range legendTiers {
		if i >= len(r.cfg.LegendPrizes) {
			break
		}
		count := SlotCount - i
		lines = append(lines, fmt.Sprintf("%s %s _%s_", strings.Repeat(r.cfg.LegendSymbol, count), tier, r.cfg.LegendPrizes[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) border(n int) string {
	if len(r.cfg.Decorations) == 0 {
		return strings.Repeat("━", n*2)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, r.cfg.Decorations[i%len(r.cfg.Decorations)])
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) reels() string {
	var b strings.Builder
	left := strings.Join(r.cfg.Decorations, " ")
	if left != "" {
		b.WriteString(left)
		b.WriteString("  ")
	}
	b.WriteString("»»  ")
	b.WriteString(reelSeparator)
	for i := 0; i < SlotCount; i++ {
		b.WriteString("   ")
		b.WriteString(r.cfg.IdleMarker)
		b.WriteString("   ")
		b.WriteString(reelSeparator)
	}
	b.WriteString("  ««")
	if left != "" {
		right := make([]string, len(r.cfg.Decorations))
		for i, d := range r.cfg.Decorations {
			right[len(right)-1-i] = d
		}
		b.WriteString("   ")
		b.WriteString(strings.Join(right, " "))
	}
	return b.String()
}
