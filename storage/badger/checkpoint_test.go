package badger

import (
	"context"
	"testing"

	"github.com/poiesic/cognit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	hg, checkpoints, backend, err := NewMemoryHypergraph()
	require.NoError(t, err)
	defer func() { hg.Close(); backend.Close() }()

	ctx := context.Background()

	missing, err := checkpoints.LoadCheckpoint(ctx, "txt_parser")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Agent: "txt_parser", Sequence: "news", Operations: 5, Position: 2,
	}))
	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Agent: "ontology", Operations: 1, Position: -1,
	}))

	loaded, err := checkpoints.LoadCheckpoint(ctx, "txt_parser")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "news", loaded.Sequence)
	assert.Equal(t, 5, loaded.Operations)
	assert.Equal(t, 2, loaded.Position)
	assert.False(t, loaded.UpdatedAt.IsZero())

	// Overwrite
	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Agent: "txt_parser", Sequence: "news", Operations: 9, Position: 6,
	}))
	loaded, err = checkpoints.LoadCheckpoint(ctx, "txt_parser")
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Operations)

	all, err := checkpoints.ListCheckpoints(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ontology", all[0].Agent)
	assert.Equal(t, "txt_parser", all[1].Agent)
}

func TestCheckpointRepository_Invalid(t *testing.T) {
	hg, checkpoints, backend, err := NewMemoryHypergraph()
	require.NoError(t, err)
	defer func() { hg.Close(); backend.Close() }()

	err = checkpoints.SaveCheckpoint(context.Background(), &core.Checkpoint{Position: -1})
	assert.ErrorIs(t, err, core.ErrEmptyAgentName)
}
