package artifact

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry of the conversation transcript.
// Messages are immutable once created and only ever appended.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// StoryboardItem is one scene of a video storyboard: a resolved image
// plus the caption shown under it. Slice order is playback order.
type StoryboardItem struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

// Scene is one entry of a scene plan before its image has been
// resolved. VisualPrompt feeds the image model; Caption is carried
// through to the finished StoryboardItem unchanged.
type Scene struct {
	VisualPrompt string `json:"visualPrompt"`
	Caption      string `json:"caption"`
}

// RefineKind selects the prompt framing for a refinement call.
// It does not influence routing; the studio router decides which
// field of a Content is being edited.
type RefineKind string

const (
	KindText    RefineKind = "text"
	KindSummary RefineKind = "summary"
	KindWeb     RefineKind = "web"
)

// Content is the bundle of derived outputs for one topic.
//
// Zero values:
//   - ID: uuid.Nil (invalid, must be generated)
//   - OriginalText: "" (invalid after generation, required)
//   - Summary: "" (invalid after generation, required)
//   - ImageURL: "" (no illustration yet)
//   - WebHTML: "" (no web preview yet)
//   - Storyboard: nil (video phase not finished; a valid display state)
//
// A Content with a nil Storyboard is partially complete. Consumers
// must render it as a placeholder state, not treat it as an error.
type Content struct {
	ID           uuid.UUID        `json:"id"`
	OriginalText string           `json:"originalText"`
	Summary      string           `json:"summary"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	WebHTML      string           `json:"webHtml,omitempty"`
	Storyboard   []StoryboardItem `json:"videoStoryboard,omitempty"`
	CreatedAt    time.Time        `json:"timestamp"`
}

// Clone returns a deep copy. The Storyboard slice is copied so the
// clone can be replaced independently of the original.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := *c
	if c.Storyboard != nil {
		out.Storyboard = make([]StoryboardItem, len(c.Storyboard))
		copy(out.Storyboard, c.Storyboard)
	}
	return &out
}
