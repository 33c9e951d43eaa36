//go:build unit

package order_test

import (
	"testing"

	"dicetrails/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TestStatus_CanTransitionTo =====

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.StatusReadyToShip: {order.StatusShipped, order.StatusCancelled},
		order.StatusShipped:     {order.StatusCompleted, order.StatusCancelled},
		order.StatusCompleted:   {},
		order.StatusCancelled:   {},
	}
	all := []order.Status{
		order.StatusReadyToShip,
		order.StatusShipped,
		order.StatusCompleted,
		order.StatusCancelled,
	}

	for from, targets := range allowed {
		ok := make(map[order.Status]bool, len(targets))
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			want := ok[to]
			assert.Equal(t, want, from.CanTransitionTo(to),
				"%s -> %s: want %v", from, to, want)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.StatusReadyToShip.IsTerminal())
	assert.False(t, order.StatusShipped.IsTerminal())
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.Status("bogus").IsTerminal())
}

// ===== TestNewStatus =====

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    order.Status
		wantErr bool
	}{
		{"ready to ship", "ready_to_ship", order.StatusReadyToShip, false},
		{"shipped", "shipped", order.StatusShipped, false},
		{"completed", "completed", order.StatusCompleted, false},
		{"cancelled", "cancelled", order.StatusCancelled, false},
		{"unknown", "refunded", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.NewStatus(tt.input)
			if tt.wantErr {
				var terr *order.InvalidTransitionError
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, order.Status(tt.input), terr.To)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidTransitionError_Error(t *testing.T) {
	withFrom := &order.InvalidTransitionError{From: order.StatusCompleted, To: order.StatusShipped}
	assert.Equal(t, `invalid order status transition "completed" -> "shipped"`, withFrom.Error())

	withoutFrom := &order.InvalidTransitionError{To: order.Status("refunded")}
	assert.Equal(t, `invalid order status "refunded"`, withoutFrom.Error())
}
