package studio

import (
	"strings"

	"github.com/springlab/osmu/internal/artifact"
)

// route is the top-level decision for an incoming message.
type route int

const (
	routeGenerate route = iota
	routeRefine
)

// target names the content field a refinement edits.
type target int

const (
	targetText target = iota
	targetSummary
	targetWeb
)

// kind maps a routing target onto the gateway's prompt framing.
func (t target) kind() artifact.RefineKind {
	switch t {
	case targetSummary:
		return artifact.KindSummary
	case targetWeb:
		return artifact.KindWeb
	default:
		return artifact.KindText
	}
}

// refineHints are the substrings that signal revision intent. The set
// is heuristic and locale-specific (Korean): roughly "modify", "change",
// "again/redo", "more", "please do", "summarize".
var refineHints = []string{"수정", "바꿔", "다시", "더", "해줘", "요약"}

// classify decides whether a message starts a new generation or refines
// the open content. It is a pure function of (text, hasOpenContent):
// with no content open the route is always a new generation, and a
// message matching none of the hints starts a new topic even when
// content is open. That default-to-new-topic behavior is deliberate.
func classify(text string, hasOpenContent bool) route {
	if !hasOpenContent {
		return routeGenerate
	}
	for _, hint := range refineHints {
		if strings.Contains(text, hint) {
			return routeRefine
		}
	}
	return routeGenerate
}

// refineTarget picks the field a refinement instruction addresses.
// Checks run in fixed priority order: summary first, then web/page,
// defaulting to the main article text. Ties resolve by that order, not
// by keyword position or count.
func refineTarget(text string) target {
	switch {
	case strings.Contains(text, "요약"):
		return targetSummary
	case strings.Contains(text, "웹") || strings.Contains(text, "페이지"):
		return targetWeb
	default:
		return targetText
	}
}
