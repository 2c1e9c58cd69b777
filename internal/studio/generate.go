package studio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/springlab/osmu/internal/artifact"
)

// generate runs the full fan-out/fan-in pipeline for one topic:
//
//	article → (summary | image | web, in parallel) → storyboard
//
// The content bundle is published as soon as the three derivatives
// join, before the storyboard phase, so the user can browse it while
// the video is still being produced.
func (s *Studio) generate(ctx context.Context, topic string) error {
	if !s.state.beginGenerate(topic, taskArticle) {
		return ErrBusy
	}

	article, err := s.gw.GenerateArticle(ctx, topic)
	if err != nil {
		s.state.fail(msgGenerateFailed)
		s.logger.Error("article generation failed", "error", err)
		return fmt.Errorf("article: %w", err)
	}

	s.state.advance(taskDerive, msgArticleDone)

	var summary, imageURL, webHTML string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.gw.GenerateSummary(gctx, article)
		return err
	})
	g.Go(func() error {
		var err error
		imageURL, err = s.gw.GenerateImage(gctx, topic)
		return err
	})
	g.Go(func() error {
		var err error
		webHTML, err = s.gw.GenerateWebCode(gctx, article)
		return err
	})
	if err := g.Wait(); err != nil {
		s.state.fail(msgGenerateFailed)
		s.logger.Error("derivative generation failed", "error", err)
		return fmt.Errorf("derivatives: %w", err)
	}

	content := &artifact.Content{
		ID:           uuid.New(),
		OriginalText: article,
		Summary:      summary,
		ImageURL:     imageURL,
		WebHTML:      webHTML,
		CreatedAt:    time.Now(),
	}
	s.state.publish(content, taskStoryboard)

	board, err := s.buildStoryboard(ctx, topic)
	if err != nil {
		// The bundle is already published; losing the storyboard
		// leaves it in a terminal no-video state. Only the generic
		// failure message tells the user the video never arrived.
		s.state.fail(msgGenerateFailed)
		s.logger.Error("storyboard generation failed", "id", content.ID, "error", err)
		return fmt.Errorf("storyboard: %w", err)
	}

	s.state.complete(content.ID, board, msgAllDone)
	s.logger.Info("generation complete",
		"id", content.ID,
		"article_len", len(article),
		"scenes", len(board))
	return nil
}
