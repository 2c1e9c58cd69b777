package studio

import (
	"context"

	"github.com/springlab/osmu/internal/artifact"
)

// Gateway is the model service consumed by the orchestrators.
// Following Go best practice the interface is defined here, by the
// consumer; internal/gemini provides the production implementation and
// tests substitute fakes.
//
// Contract shared by all operations:
//   - Transport and auth failures return a non-nil error.
//   - Degenerate model output (empty text, missing image payload,
//     malformed plan JSON) is NOT an error: each call defines a
//     fallback value and returns it with a nil error.
type Gateway interface {
	// GenerateArticle writes a full-form article for the topic.
	GenerateArticle(ctx context.Context, topic string) (string, error)

	// GenerateSummary condenses text into short-form copy.
	GenerateSummary(ctx context.Context, text string) (string, error)

	// GenerateImage renders an illustration and returns an embeddable
	// reference (data URI). Empty string means "no image".
	GenerateImage(ctx context.Context, visualPrompt string) (string, error)

	// GenerateWebCode renders text as an embeddable HTML fragment.
	GenerateWebCode(ctx context.Context, text string) (string, error)

	// RefineContent edits original per the instruction; kind selects
	// prompt framing only. Degenerate output returns original unchanged.
	RefineContent(ctx context.Context, original, instruction string, kind artifact.RefineKind) (string, error)

	// GenerateScenePlan returns an ordered storyboard plan. Malformed
	// planner output resolves to an empty plan, nil error.
	GenerateScenePlan(ctx context.Context, topic string) ([]artifact.Scene, error)
}
