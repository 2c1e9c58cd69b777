package studio

import (
	"sync"

	"github.com/google/uuid"

	"github.com/springlab/osmu/internal/artifact"
)

// Snapshot is an immutable, self-contained view of session state.
// Field names mirror what the browser client consumes.
type Snapshot struct {
	Generating  bool                   `json:"isGenerating"`
	CurrentTask string                 `json:"currentTask"`
	Messages    []artifact.ChatMessage `json:"messages"`
	Current     *artifact.Content      `json:"currentResult"`
	History     []artifact.Content     `json:"history"`

	// Revision increases by one per state change, letting stream
	// consumers detect missed updates.
	Revision uint64 `json:"revision"`
}

// state is the single-owner session store. All mutation happens through
// the methods below, each of which holds the lock for the whole
// transition so readers never observe a half-applied phase.
//
// The zero value is not useful; use newState.
type state struct {
	mu         sync.RWMutex
	generating bool
	task       string
	messages   []artifact.ChatMessage
	current    *artifact.Content
	history    []*artifact.Content // newest first
	revision   uint64
	subs       map[chan Snapshot]struct{}
}

func newState(greeting string) *state {
	s := &state{subs: make(map[chan Snapshot]struct{})}
	if greeting != "" {
		s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleModel, Text: greeting})
	}
	return s
}

// snapshotLocked builds a deep-enough copy of the state. Callers must
// hold at least the read lock.
func (s *state) snapshotLocked() Snapshot {
	msgs := make([]artifact.ChatMessage, len(s.messages))
	copy(msgs, s.messages)

	hist := make([]artifact.Content, 0, len(s.history))
	for _, c := range s.history {
		hist = append(hist, *c.Clone())
	}

	return Snapshot{
		Generating:  s.generating,
		CurrentTask: s.task,
		Messages:    msgs,
		Current:     s.current.Clone(),
		History:     hist,
		Revision:    s.revision,
	}
}

// Snapshot returns a consistent copy of the full session state.
func (s *state) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// notifyLocked bumps the revision and pushes the new snapshot to every
// subscriber, latest-wins: a slow subscriber's stale pending snapshot
// is replaced rather than blocking the orchestrator.
func (s *state) notifyLocked() {
	s.revision++
	snap := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// subscribe registers a state watcher. The returned cancel func must be
// called to release the channel.
func (s *state) subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	ch <- s.snapshotLocked() // prime with current state
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// currentClone returns a copy of the open content, or nil.
func (s *state) currentClone() *artifact.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

func (s *state) busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}

// beginGenerate atomically claims the in-flight guard, appends the user
// message, and sets the first task label. Returns false (and changes
// nothing) when another orchestration is already running.
func (s *state) beginGenerate(userText, task string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	s.task = task
	s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleUser, Text: userText})
	s.notifyLocked()
	return true
}

// beginRefine is beginGenerate's counterpart for edits. It additionally
// captures the content being edited under the same lock, so the
// refinement always operates on the state it claimed.
func (s *state) beginRefine(userText, task string) (*artifact.Content, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating || s.current == nil {
		return nil, false
	}
	s.generating = true
	s.task = task
	s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleUser, Text: userText})
	s.notifyLocked()
	return s.current.Clone(), true
}

// advance moves to the next phase: new task label plus a progress
// message from the model, in one transition.
func (s *state) advance(task, modelMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.task = task
	if modelMsg != "" {
		s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleModel, Text: modelMsg})
	}
	s.notifyLocked()
}

// publish inserts freshly generated content at the head of history and
// opens it, while the run continues into its next phase under the given
// task label. The guard stays claimed.
func (s *state) publish(c *artifact.Content, task string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c.Clone()
	s.history = append([]*artifact.Content{c.Clone()}, s.history...)
	s.task = task
	s.notifyLocked()
}

// complete attaches the finished storyboard to the content with the
// given id — in the open content and its history entry both — then
// releases the guard and appends the closing message. One transition,
// so no observer can see the storyboard while the run still looks
// in-flight.
func (s *state) complete(id uuid.UUID, board []artifact.StoryboardItem, modelMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == id {
		s.current.Storyboard = board
	}
	for _, c := range s.history {
		if c.ID == id {
			c.Storyboard = board
			break
		}
	}
	s.generating = false
	s.task = ""
	s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleModel, Text: modelMsg})
	s.notifyLocked()
}

// replace swaps in a refined version of the open content and releases
// the guard. The matching history entry is updated too, keeping history
// and currentResult consistent by id.
func (s *state) replace(c *artifact.Content, modelMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c.Clone()
	for i, h := range s.history {
		if h.ID == c.ID {
			s.history[i] = c.Clone()
			break
		}
	}
	s.generating = false
	s.task = ""
	s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleModel, Text: modelMsg})
	s.notifyLocked()
}

// fail releases the guard and reports the failure to the transcript.
// State already committed by earlier phases is kept; nothing rolls
// back because state only ever advances on success.
func (s *state) fail(modelMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	s.task = ""
	s.messages = append(s.messages, artifact.ChatMessage{Role: artifact.RoleModel, Text: modelMsg})
	s.notifyLocked()
}

// clearCurrent closes the open content. History is retained.
func (s *state) clearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.notifyLocked()
}

// open sets the open content to the history entry with the given id.
func (s *state) open(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.history {
		if c.ID == id {
			s.current = c.Clone()
			s.notifyLocked()
			return true
		}
	}
	return false
}
