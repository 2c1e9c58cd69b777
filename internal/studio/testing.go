package studio

import (
	"context"
	"fmt"
	"sync"

	"github.com/springlab/osmu/internal/artifact"
)

// fakeGateway is a controllable Gateway for tests. Every operation has
// a deterministic default and can be overridden per test by assigning
// the corresponding func field. Call counts are recorded under a lock
// so concurrent fan-out phases can be asserted on safely.
type fakeGateway struct {
	mu sync.Mutex

	ArticleFn   func(ctx context.Context, topic string) (string, error)
	SummaryFn   func(ctx context.Context, text string) (string, error)
	ImageFn     func(ctx context.Context, visualPrompt string) (string, error)
	WebFn       func(ctx context.Context, text string) (string, error)
	RefineFn    func(ctx context.Context, original, instruction string, kind artifact.RefineKind) (string, error)
	ScenePlanFn func(ctx context.Context, topic string) ([]artifact.Scene, error)

	imageCalls  []string
	refineKinds []artifact.RefineKind
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{}
}

func (f *fakeGateway) GenerateArticle(ctx context.Context, topic string) (string, error) {
	if f.ArticleFn != nil {
		return f.ArticleFn(ctx, topic)
	}
	return "article about " + topic, nil
}

func (f *fakeGateway) GenerateSummary(ctx context.Context, text string) (string, error) {
	if f.SummaryFn != nil {
		return f.SummaryFn(ctx, text)
	}
	return "summary of " + text, nil
}

func (f *fakeGateway) GenerateImage(ctx context.Context, visualPrompt string) (string, error) {
	f.mu.Lock()
	f.imageCalls = append(f.imageCalls, visualPrompt)
	f.mu.Unlock()
	if f.ImageFn != nil {
		return f.ImageFn(ctx, visualPrompt)
	}
	return "data:image/png;base64,img-" + visualPrompt, nil
}

func (f *fakeGateway) GenerateWebCode(ctx context.Context, text string) (string, error) {
	if f.WebFn != nil {
		return f.WebFn(ctx, text)
	}
	return "<div>web for " + text + "</div>", nil
}

func (f *fakeGateway) RefineContent(ctx context.Context, original, instruction string, kind artifact.RefineKind) (string, error) {
	f.mu.Lock()
	f.refineKinds = append(f.refineKinds, kind)
	f.mu.Unlock()
	if f.RefineFn != nil {
		return f.RefineFn(ctx, original, instruction, kind)
	}
	return "refined(" + original + ")", nil
}

func (f *fakeGateway) GenerateScenePlan(ctx context.Context, topic string) ([]artifact.Scene, error) {
	if f.ScenePlanFn != nil {
		return f.ScenePlanFn(ctx, topic)
	}
	scenes := make([]artifact.Scene, 3)
	for i := range scenes {
		scenes[i] = artifact.Scene{
			VisualPrompt: fmt.Sprintf("%s scene %d", topic, i),
			Caption:      fmt.Sprintf("장면 %d", i),
		}
	}
	return scenes, nil
}

// ImageCalls returns a copy of the visual prompts passed to
// GenerateImage, in call order.
func (f *fakeGateway) ImageCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.imageCalls))
	copy(out, f.imageCalls)
	return out
}

// RefineKinds returns a copy of the prompt framings passed to
// RefineContent, in call order.
func (f *fakeGateway) RefineKinds() []artifact.RefineKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]artifact.RefineKind, len(f.refineKinds))
	copy(out, f.refineKinds)
	return out
}
