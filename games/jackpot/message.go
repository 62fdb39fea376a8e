package jackpot

// Block IDs are the fixed markers used to find regions of a rendered game.
const (
	BlockLegend  = "legend"
	BlockInvite  = "invite"
	BlockPlayer  = "player"
	BlockStart   = "start"
	BlockReels   = "reels"
	BlockBanner  = "banner"
	BlockLevers  = "levers"
	BlockOutcome = "outcome"
)

// blockLabels are the visible headings of labelled blocks. Transports that
// only carry the heading map it back to the block ID through this table.
var blockLabels = map[string]string{
	BlockLegend:  "Prizes",
	BlockInvite:  "Challenge",
	BlockPlayer:  "Player",
	BlockReels:   "Reels",
	BlockBanner:  "Status",
	BlockOutcome: "Result",
}

var blocksByLabel = func() map[string]string {
	m := make(map[string]string, len(blockLabels))
	for id, label := range blockLabels {
		m[label] = id
	}
	return m
}()

// LabelFor returns the heading drawn above block id, or "" for blocks
// without one.
func LabelFor(id string) string {
	return blockLabels[id]
}

// BlockIDForLabel is the inverse of LabelFor.
func BlockIDForLabel(label string) string {
	return blocksByLabel[label]
}

// ControlRowID names a control row by the actions it carries.
func ControlRowID(controls []Control) string {
	for _, c := range controls {
		switch {
		case c.Action == ActionSpin:
			return BlockStart
		case c.Action.IsReel():
			return BlockLevers
		}
	}
	return ""
}

// ControlStyle hints how a transport should draw a control.
type ControlStyle int

const (
	StylePrimary ControlStyle = iota
	StyleSecondary
	StyleSuccess
	StyleDanger
)

// Control is a clickable element inside a control row.
type Control struct {
	Action Action
	Label  string
	Style  ControlStyle
}

// Block is one region of a rendered game. A block with Controls is a control
// row, anything else is a text section. Anonymous blocks are decoration.
type Block struct {
	ID       string
	Label    string
	Text     string
	Controls []Control
}

// IsControlRow reports whether the block holds controls instead of text.
func (b Block) IsControlRow() bool {
	return len(b.Controls) > 0
}

// Message is the transport-neutral form of a game message. It is the only
// place game state is kept.
type Message struct {
	Title  string
	Blocks []Block
}

// Find returns the index of the first block with the given ID, or -1.
func (m Message) Find(id string) int {
	for i, b := range m.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (m Message) Clone() Message {
	out := Message{Title: m.Title, Blocks: make([]Block, len(m.Blocks))}
	for i, b := range m.Blocks {
		out.Blocks[i] = b
		if b.Controls != nil {
			out.Blocks[i].Controls = append([]Control(nil), b.Controls...)
		}
	}
	return out
}
