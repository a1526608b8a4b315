package docs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifiersEmptyAnswersFalse(t *testing.T) {
	required, err := Modifiers(nil).RequiresModification(context.Background(), EntityDistribution, "abc")
	require.NoError(t, err)
	assert.False(t, required)
}

func TestModifiersShortCircuitOnTrue(t *testing.T) {
	calls := 0
	yes := ModifierFunc(func(context.Context, string, string) (bool, error) {
		calls++
		return true, nil
	})
	never := ModifierFunc(func(context.Context, string, string) (bool, error) {
		t.Fatal("modifier after a true answer must not be consulted")
		return false, nil
	})

	required, err := Modifiers{yes, never}.RequiresModification(context.Background(), EntityDistribution, "abc")
	require.NoError(t, err)
	assert.True(t, required)
	assert.Equal(t, 1, calls)
}

func TestModifiersErrorStopsTheChain(t *testing.T) {
	boom := errors.New("lookup failed")
	failing := ModifierFunc(func(context.Context, string, string) (bool, error) {
		return false, boom
	})

	_, err := Modifiers{failing}.RequiresModification(context.Background(), EntityDistribution, "abc")
	assert.ErrorIs(t, err, boom)
}

func TestProtectedDatasets(t *testing.T) {
	p := NewProtectedDatasets([]string{"abc-123", "def-456"})

	required, err := p.RequiresModification(context.Background(), EntityDistribution, "abc-123")
	require.NoError(t, err)
	assert.True(t, required)

	required, err = p.RequiresModification(context.Background(), EntityDistribution, "open-data")
	require.NoError(t, err)
	assert.False(t, required)

	required, err = p.RequiresModification(context.Background(), "dataset", "abc-123")
	require.NoError(t, err)
	assert.False(t, required, "only distribution-level docs are governed")
}
