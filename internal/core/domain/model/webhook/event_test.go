package webhook_test

import (
	"errors"
	"testing"
	"time"

	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotification(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    webhook.Notification
		wantErr error
	}{
		{
			name: "numeric id",
			body: `{"type":"payment","data":{"id":123456789},"action":"payment.updated"}`,
			want: webhook.Notification{Type: "payment", ExternalID: "123456789"},
		},
		{
			name: "string id",
			body: `{"type":"payment","data":{"id":"987"}}`,
			want: webhook.Notification{Type: "payment", ExternalID: "987"},
		},
		{
			name: "untrusted fields are dropped",
			body: `{"type":"payment","data":{"id":"1","status":"approved","transaction_amount":1}}`,
			want: webhook.Notification{Type: "payment", ExternalID: "1"},
		},
		{
			name: "other type without id",
			body: `{"type":"plan"}`,
			want: webhook.Notification{Type: "plan"},
		},
		{name: "not json", body: `type=payment`, wantErr: errs.ErrValueIsInvalid},
		{name: "missing type", body: `{"data":{"id":1}}`, wantErr: errs.ErrValueIsRequired},
		{name: "object id", body: `{"type":"payment","data":{"id":{}}}`, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := webhook.ParseNotification([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_Resolve(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	e, err := webhook.NewEvent(42, []byte(`{"type":"payment"}`), at)
	require.NoError(t, err)
	assert.Equal(t, webhook.Received, e.Disposition())

	e.Resolve(webhook.Failed, errors.New("gateway timeout"), at)
	assert.True(t, e.IsRetryable())
	assert.Equal(t, 1, e.Attempts())
	assert.Equal(t, "gateway timeout", e.LastError())

	e.Resolve(webhook.Processed, nil, at)
	assert.False(t, e.IsRetryable())
	assert.Equal(t, 2, e.Attempts())
	assert.Empty(t, e.LastError())
	require.NotNil(t, e.ProcessedAt())

	_, err = webhook.NewEvent(0, nil, at)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
