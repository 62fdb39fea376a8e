package jackpot

import (
	"fmt"
	"time"
)

// Result is what a handled action produced. Renders are delivered in order.
type Result struct {
	OwnerID string
	Renders []Message
	Outcome *Outcome

	// RemoveAfter is non-zero when the message should be deleted after the
	// last render is delivered.
	RemoveAfter time.Duration
}

// Router dispatches one inbound action through extract, resolve and render.
type Router struct {
	cfg       Config
	extractor *Extractor
	resolver  *Resolver
	renderer  *Renderer
}

// NewRouter wires an engine for cfg drawing from src.
func NewRouter(cfg Config, src Source) *Router {
	return &Router{
		cfg:       cfg,
		extractor: NewExtractor(cfg),
		resolver:  NewResolver(cfg, src),
		renderer:  NewRenderer(cfg, src),
	}
}

// NewGame renders a fresh machine inviting inviteeID.
func (r *Router) NewGame(inviteeID string) Message {
	return r.renderer.RenderIdle(inviteeID)
}

// Extract exposes the extractor for callers that only need to read a game.
func (r *Router) Extract(msg Message) (*Snapshot, error) {
	return r.extractor.Extract(msg)
}

// Handle applies action by actorID to current. Every returned error is a
// no-op for the game; see IsNoOp.
func (r *Router) Handle(actorID string, action Action, current Message) (*Result, error) {
	snap, err := r.extractor.Extract(current)
	if err != nil {
		return nil, err
	}

	if action == ActionSpin {
		if snap.OwnerID != "" {
			return nil, ErrAlreadyStarted
		}
		return &Result{
			OwnerID: actorID,
			Renders: []Message{r.renderer.RenderStarted(snap, actorID)},
		}, nil
	}

	idx, ok := action.SlotIndex()
	if !ok {
		return nil, fmt.Errorf("%v: %w", action, ErrUnknownAction)
	}
	if snap.OwnerID == "" {
		return nil, ErrOwnerNotBound
	}
	if actorID != snap.OwnerID {
		return nil, ErrUnauthorized
	}

	outcome, err := r.resolver.Resolve(snap, idx)
	if err != nil {
		return nil, err
	}
	resolved := r.renderer.RenderResolved(outcome.Next, idx)
	res := &Result{
		OwnerID: snap.OwnerID,
		Renders: []Message{resolved},
		Outcome: outcome,
	}
	if outcome.Terminal {
		res.Renders = append(res.Renders, r.renderer.RenderTerminal(resolved, snap.OwnerID, outcome.Class))
		if outcome.Class == Lose {
			res.RemoveAfter = r.cfg.RemovalDelay
		}
	}
	return res, nil
}
