package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/mesh"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTemp(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	return s, path
}

func TestCollectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	sess := host.NewSession(mesh.NewLapJoint(false, 0, 0))
	_, err := sess.CreateCollection("END_1", 490, host.NodeCollection)
	require.NoError(t, err)
	require.NoError(t, sess.AppendNodes("END_1", []int{7, 3}))
	require.NoError(t, sess.AddChild("A", "B"))
	require.NoError(t, s.SaveCollections(ctx, sess.Collections()))
	require.NoError(t, s.Close())

	// Reopen and restore into a fresh session without the output collection
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	fresh := host.NewSession(mesh.NewLapJoint(false, 0, 0))
	n, err := s.Restore(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	if diff := cmp.Diff(sess.Collections(), fresh.Collections()); diff != "" {
		t.Errorf("restored collections mismatch (-want +got):\n%s", diff)
	}
	c, ok := fresh.Collection("END_1")
	require.True(t, ok)
	assert.Equal(t, []int{7, 3}, c.Members)
	assert.Equal(t, host.NodeCollection, c.Kind)

	// Saving again replaces rather than accumulates
	require.NoError(t, fresh.DeleteCollection("END_1"))
	require.NoError(t, s.SaveCollections(ctx, fresh.Collections()))
	cols, err := s.LoadCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, cols, 4)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	defer s.Close()

	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{ID: uuid.New(), Pass: "lap", Started: t0, Components: 3, Skipped: 1},
		{ID: uuid.New(), Pass: "tjoint", Started: t0.Add(time.Second), Components: 2},
	}
	for _, r := range runs {
		require.NoError(t, s.RecordRun(ctx, r))
	}
	got, err := s.Runs(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(runs, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	assert.Error(t, s.RecordRun(ctx, runs[0]), "duplicate run id")
}
