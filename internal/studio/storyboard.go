package studio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/springlab/osmu/internal/artifact"
)

// buildStoryboard turns a topic into an ordered sequence of
// (image, caption) scenes. The plan's images are resolved concurrently
// but reassembled in plan order: each goroutine writes into its own
// slot of a pre-sized slice, so completion order never matters.
//
// Failure policy: any single scene's image failure fails the whole
// storyboard. Scenes are meant to play as one sequence; a board with a
// hole in the middle is worse than no board.
func (s *Studio) buildStoryboard(ctx context.Context, topic string) ([]artifact.StoryboardItem, error) {
	scenes, err := s.gw.GenerateScenePlan(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("scene plan: %w", err)
	}
	if len(scenes) == 0 {
		// Malformed or empty plan: an empty board, not an error.
		return []artifact.StoryboardItem{}, nil
	}

	items := make([]artifact.StoryboardItem, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	for i, scene := range scenes {
		g.Go(func() error {
			url, err := s.gw.GenerateImage(gctx, scene.VisualPrompt)
			if err != nil {
				return fmt.Errorf("scene %d image: %w", i, err)
			}
			items[i] = artifact.StoryboardItem{ImageURL: url, Caption: scene.Caption}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
