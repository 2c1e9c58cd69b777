package studio

import (
	"context"
	"fmt"
)

// refine edits exactly one field of the open content per the user's
// instruction. The edited bundle replaces the open content and its
// history entry, so history never drifts out of sync with what the
// user is looking at.
func (s *Studio) refine(ctx context.Context, instruction string) error {
	current, ok := s.state.beginRefine(instruction, taskRefine)
	if !ok {
		if s.state.currentClone() == nil {
			// The open content vanished between routing and claiming
			// the guard (new-project race); treat as a fresh topic.
			return s.generate(ctx, instruction)
		}
		return ErrBusy
	}

	tgt := refineTarget(instruction)

	var original string
	switch tgt {
	case targetSummary:
		original = current.Summary
	case targetWeb:
		original = current.WebHTML
	default:
		original = current.OriginalText
	}

	edited, err := s.gw.RefineContent(ctx, original, instruction, tgt.kind())
	if err != nil {
		s.state.fail(msgRefineFailed)
		s.logger.Error("refinement failed", "id", current.ID, "error", err)
		return fmt.Errorf("refine: %w", err)
	}

	updated := current.Clone()
	switch tgt {
	case targetSummary:
		updated.Summary = edited
	case targetWeb:
		updated.WebHTML = edited
	default:
		updated.OriginalText = edited
	}

	s.state.replace(updated, msgRefineDone)
	s.logger.Info("refinement complete", "id", updated.ID, "kind", tgt.kind())
	return nil
}
