package studio

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/springlab/osmu/internal/log"
)

// Studio owns one session and drives all orchestration against the
// model gateway. Safe for concurrent use; the in-flight guard admits
// one orchestration at a time and rejects the rest.
type Studio struct {
	gw     Gateway
	state  *state
	logger log.Logger
}

// New creates a studio with an empty session. The transcript opens with
// the assistant's greeting.
func New(gw Gateway, logger log.Logger) *Studio {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Studio{
		gw:     gw,
		state:  newState(msgGreeting),
		logger: logger,
	}
}

// Submit routes one raw user message and runs the resulting
// orchestration to completion.
//
// Guard violations return ErrEmptyInput or ErrBusy without touching any
// state. Pipeline failures are absorbed into the transcript (one
// generic failure message, guard released) and additionally returned to
// the programmatic caller for logging; they never leave partial state
// behind beyond what earlier successful phases committed.
func (s *Studio) Submit(ctx context.Context, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrEmptyInput
	}

	if classify(text, s.state.currentClone() != nil) == routeRefine {
		return s.refine(ctx, text)
	}
	return s.generate(ctx, text)
}

// NewProject closes the open content so the next message starts a new
// topic. History is retained.
func (s *Studio) NewProject() {
	s.state.clearCurrent()
}

// Open makes the history entry with the given id the open content.
func (s *Studio) Open(id uuid.UUID) error {
	if !s.state.open(id) {
		return ErrNotFound
	}
	return nil
}

// Busy reports whether an orchestration is currently in flight.
func (s *Studio) Busy() bool {
	return s.state.busy()
}

// Snapshot returns a consistent copy of the session state.
func (s *Studio) Snapshot() Snapshot {
	return s.state.Snapshot()
}

// Subscribe returns a channel of state snapshots, primed with the
// current state. Delivery is latest-wins; the returned cancel func
// must be called to release the subscription.
func (s *Studio) Subscribe() (<-chan Snapshot, func()) {
	return s.state.subscribe()
}
