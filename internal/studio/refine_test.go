package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springlab/osmu/internal/artifact"
)

// generateOnce gets a studio into the "one bundle open" state.
func generateOnce(t *testing.T, s *Studio) Snapshot {
	t.Helper()
	require.NoError(t, s.Submit(context.Background(), "봄꽃"))
	snap := s.Snapshot()
	require.NotNil(t, snap.Current)
	return snap
}

func TestRefine_SummaryTarget(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	before := generateOnce(t, s)

	require.NoError(t, s.Submit(context.Background(), "요약을 더 짧게 해줘"))

	require.Equal(t, []artifact.RefineKind{artifact.KindSummary}, gw.RefineKinds())

	after := s.Snapshot()
	assert.NotEqual(t, before.Current.Summary, after.Current.Summary)
	assert.Equal(t, before.Current.OriginalText, after.Current.OriginalText, "article untouched")
	assert.Equal(t, before.Current.WebHTML, after.Current.WebHTML, "web untouched")
	assert.Equal(t, before.Current.ID, after.Current.ID, "id never changes")
	assert.Equal(t, msgRefineDone, after.Messages[len(after.Messages)-1].Text)
}

func TestRefine_WebTarget(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	before := generateOnce(t, s)

	require.NoError(t, s.Submit(context.Background(), "웹 배경색을 바꿔줘"))

	require.Equal(t, []artifact.RefineKind{artifact.KindWeb}, gw.RefineKinds())

	after := s.Snapshot()
	assert.NotEqual(t, before.Current.WebHTML, after.Current.WebHTML)
	assert.Equal(t, before.Current.Summary, after.Current.Summary)
	assert.Equal(t, before.Current.OriginalText, after.Current.OriginalText)
}

func TestRefine_TextDefault(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	before := generateOnce(t, s)

	require.NoError(t, s.Submit(context.Background(), "더 전문적인 어조로 다시 써줘"))

	require.Equal(t, []artifact.RefineKind{artifact.KindText}, gw.RefineKinds())

	after := s.Snapshot()
	assert.NotEqual(t, before.Current.OriginalText, after.Current.OriginalText)
	assert.Equal(t, before.Current.Summary, after.Current.Summary)
}

func TestRefine_PropagatesToHistory(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	generateOnce(t, s)

	require.NoError(t, s.Submit(context.Background(), "요약을 수정해줘"))

	snap := s.Snapshot()
	require.Len(t, snap.History, 1)
	assert.Equal(t, snap.Current.Summary, snap.History[0].Summary,
		"history entry matches the refined current result")
}

func TestRefine_FailureLeavesContentUnchanged(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	before := generateOnce(t, s)

	gw.RefineFn = func(_ context.Context, _, _ string, _ artifact.RefineKind) (string, error) {
		return "", errors.New("transport error")
	}

	err := s.Submit(context.Background(), "요약을 수정해줘")
	require.Error(t, err)

	after := s.Snapshot()
	assert.Equal(t, before.Current.Summary, after.Current.Summary)
	assert.Equal(t, before.Current.OriginalText, after.Current.OriginalText)
	assert.False(t, after.Generating)
	assert.Empty(t, after.CurrentTask)
	assert.Equal(t, msgRefineFailed, after.Messages[len(after.Messages)-1].Text)
}

func TestRefine_DegenerateOutputIsNoOpEdit(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	before := generateOnce(t, s)

	// A gateway that cannot improve the content returns the original
	// unchanged; the studio treats that as success.
	gw.RefineFn = func(_ context.Context, original, _ string, _ artifact.RefineKind) (string, error) {
		return original, nil
	}

	require.NoError(t, s.Submit(context.Background(), "요약을 수정해줘"))

	after := s.Snapshot()
	assert.Equal(t, before.Current.Summary, after.Current.Summary)
	assert.Equal(t, msgRefineDone, after.Messages[len(after.Messages)-1].Text)
}

func TestRefine_WithoutOpenContentGeneratesInstead(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)

	// Refine-looking message with no content open routes to generation.
	require.NoError(t, s.Submit(context.Background(), "요약을 더 짧게 해줘"))

	snap := s.Snapshot()
	require.Len(t, snap.History, 1)
	assert.Empty(t, gw.RefineKinds(), "no refinement call happened")
}
