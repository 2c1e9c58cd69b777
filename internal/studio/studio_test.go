package studio

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_EmptyInput(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)

	for _, raw := range []string{"", "   ", "\n\t "} {
		before := s.Snapshot()
		err := s.Submit(context.Background(), raw)
		assert.ErrorIs(t, err, ErrEmptyInput)
		after := s.Snapshot()
		assert.Equal(t, before.Revision, after.Revision, "guard violations change nothing")
	}
}

func TestSubmit_TrimsInput(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)

	require.NoError(t, s.Submit(context.Background(), "  봄꽃  \n"))
	snap := s.Snapshot()
	assert.Equal(t, "봄꽃", snap.Messages[1].Text)
	assert.True(t, strings.HasSuffix(snap.History[0].OriginalText, "봄꽃"))
}

func TestNewProject(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	require.NoError(t, s.Submit(context.Background(), "봄꽃"))

	s.NewProject()

	snap := s.Snapshot()
	assert.Nil(t, snap.Current)
	assert.Len(t, snap.History, 1, "history survives a new project")
	assert.Len(t, snap.Messages, 4, "transcript survives a new project")
}

func TestOpen(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)
	require.NoError(t, s.Submit(context.Background(), "봄꽃"))
	id := s.Snapshot().History[0].ID

	s.NewProject()
	require.Nil(t, s.Snapshot().Current)

	require.NoError(t, s.Open(id))
	require.NotNil(t, s.Snapshot().Current)
	assert.Equal(t, id, s.Snapshot().Current.ID)

	assert.ErrorIs(t, s.Open(uuid.New()), ErrNotFound)
}

func TestSubscribe_SeesGenerationLifecycle(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStudio(gw)

	ch, cancel := s.Subscribe()
	defer cancel()
	<-ch // primed snapshot

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Submit(context.Background(), "봄꽃")
	}()
	<-done

	// Latest-wins delivery: after the run finishes the channel holds
	// the final state.
	final := <-ch
	assert.False(t, final.Generating)
	require.NotNil(t, final.Current)
	assert.Len(t, final.Current.Storyboard, 3)
}

func TestSnapshotJSONShape(t *testing.T) {
	// The browser client depends on these exact field names.
	gw := newFakeGateway()
	s := newTestStudio(gw)
	require.NoError(t, s.Submit(context.Background(), "봄꽃"))

	snap := s.Snapshot()
	assert.Equal(t, snap.History[0].ID, snap.Current.ID)

	// Spot checks via struct tags rather than full marshal grids.
	assert.NotNil(t, snap.Current.Storyboard)
	assert.NotEmpty(t, snap.Current.OriginalText)
}
