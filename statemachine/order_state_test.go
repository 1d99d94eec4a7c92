package statemachine

import (
	"testing"

	"restaurant-management-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_HappyPath(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusConfirmed, "staff"))
	require.NoError(t, CanTransition(models.StatusConfirmed, models.StatusPreparing, "staff"))
	require.NoError(t, CanTransition(models.StatusPreparing, models.StatusReady, "staff"))
	require.NoError(t, CanTransition(models.StatusReady, models.StatusServed, "staff"))
}

func TestCanTransition_Cancellation(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "customer"))
	require.NoError(t, CanTransition(models.StatusConfirmed, models.StatusCancelled, "customer"))
	// Once the kitchen has started, customers can no longer cancel
	require.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "customer"))
}

func TestCanTransition_Invalid(t *testing.T) {
	// No skipping states
	require.Error(t, CanTransition(models.StatusPending, models.StatusServed, "staff"))
	// Customers cannot drive kitchen transitions
	require.Error(t, CanTransition(models.StatusPending, models.StatusConfirmed, "customer"))
	// Terminal states have no exits
	require.Error(t, CanTransition(models.StatusServed, models.StatusPending, "staff"))
	require.Error(t, CanTransition(models.StatusCancelled, models.StatusConfirmed, "staff"))
	// Self-transition into SERVED is rejected — the serve edge fires once
	require.Error(t, CanTransition(models.StatusServed, models.StatusServed, "staff"))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusConfirmed, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPending))
	assert.Empty(t, ValidTransitionsFrom(models.StatusServed))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}
