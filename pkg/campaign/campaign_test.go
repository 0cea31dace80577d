package campaign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/newskit/pkg/campaign"
)

func TestStatus_RequiresResendConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status campaign.Status
		want   bool
	}{
		{name: "unset", status: "", want: false},
		{name: "unsent", status: campaign.StatusUnsent, want: false},
		{name: "sent", status: campaign.StatusSent, want: true},
		{name: "legacy free-form value", status: "delivered?", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.status.RequiresResendConfirm())
		})
	}
}
