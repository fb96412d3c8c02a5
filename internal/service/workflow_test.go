package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/pharmacy/internal/models"
)

func TestPermissive_AllowsEverything(t *testing.T) {
	t.Parallel()

	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			assert.True(t, Permissive.Allowed(from, to), "%s -> %s", from, to)
		}
	}
}

func TestForward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusProcessing, models.StatusOutForDelivery, true},
		{models.StatusOutForDelivery, models.StatusDelivered, true},
		{models.StatusPending, models.StatusDelivered, false},
		{models.StatusDelivered, models.StatusPending, false},
		{models.StatusDelivered, models.StatusDelivered, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Forward.Allowed(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
