package jackpot

// Action is a player action carried by a control.
type Action int

const (
	ActionUnknown Action = iota
	ActionSpin
	ActionReel1
	ActionReel2
	ActionReel3
	ActionReel4
	ActionReel5
)

// CustomIDPrefix prefixes every control identifier owned by the machine.
const CustomIDPrefix = "jackpot_"

var actionIDs = map[Action]string{
	ActionSpin:  "jackpot_spin",
	ActionReel1: "jackpot_reel_1",
	ActionReel2: "jackpot_reel_2",
	ActionReel3: "jackpot_reel_3",
	ActionReel4: "jackpot_reel_4",
	ActionReel5: "jackpot_reel_5",
}

var actionsByID = func() map[string]Action {
	m := make(map[string]Action, len(actionIDs))
	for a, id := range actionIDs {
		m[id] = a
	}
	return m
}()

var slotIndex = map[Action]int{
	ActionReel1: 0,
	ActionReel2: 1,
	ActionReel3: 2,
	ActionReel4: 3,
	ActionReel5: 4,
}

// ReelActions lists the resolve actions in slot order.
var ReelActions = [SlotCount]Action{ActionReel1, ActionReel2, ActionReel3, ActionReel4, ActionReel5}

// ParseAction maps a control identifier to its action.
func ParseAction(customID string) (Action, bool) {
	a, ok := actionsByID[customID]
	return a, ok
}

// CustomID returns the wire identifier of the action.
func (a Action) CustomID() string {
	return actionIDs[a]
}

// SlotIndex returns the reel a resolve action targets.
func (a Action) SlotIndex() (int, bool) {
	i, ok := slotIndex[a]
	return i, ok
}

// IsReel reports whether the action resolves a reel.
func (a Action) IsReel() bool {
	_, ok := slotIndex[a]
	return ok
}

func (a Action) String() string {
	if id, ok := actionIDs[a]; ok {
		return id
	}
	return "unknown"
}
