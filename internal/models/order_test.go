package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// Transitions autorisées
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusReturned))
	assert.True(t, CanTransition(StatusConfirmed, StatusDelivered))
	assert.True(t, CanTransition(StatusConfirmed, StatusReturned))

	// delivered et returned sont terminaux
	assert.False(t, CanTransition(StatusDelivered, StatusReturned))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))
	assert.False(t, CanTransition(StatusReturned, StatusConfirmed))

	// Pas de sauts ni de retours en arrière
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))

	// Pas de boucle sur soi-même
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusConfirmed))
	assert.True(t, IsValidStatus(StatusDelivered))
	assert.True(t, IsValidStatus(StatusReturned))
	assert.False(t, IsValidStatus(OrderStatus("shipped")))
	assert.False(t, IsValidStatus(OrderStatus("")))
}
