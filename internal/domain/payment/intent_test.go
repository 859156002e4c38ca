//go:build unit

package payment_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewIntent(t *testing.T) {
	bookingID := uuid.New()

	i, err := payment.NewIntent(bookingID, "paystack", "SL-1", 160_000, "ngn", now)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, i.Status())
	assert.Equal(t, "NGN", i.Currency())
	assert.Equal(t, bookingID, i.BookingID())

	_, err = payment.NewIntent(bookingID, "paystack", "  ", 160_000, "NGN", now)
	assert.ErrorIs(t, err, payment.ErrEmptyReference)
}

func TestIntent_Transitions(t *testing.T) {
	t.Run("failed can still succeed", func(t *testing.T) {
		i, err := payment.NewIntent(uuid.New(), "paystack", "SL-1", 100, "NGN", now)
		require.NoError(t, err)

		require.NoError(t, i.MarkFailed([]byte(`{"status":"failed"}`), now))
		assert.Equal(t, payment.StatusFailed, i.Status())

		later := now.Add(time.Minute)
		require.NoError(t, i.MarkSucceeded([]byte(`{"status":"success"}`), later))
		assert.Equal(t, payment.StatusSucceeded, i.Status())
		assert.JSONEq(t, `{"status":"success"}`, string(i.RawPayload()))
		assert.Equal(t, later, i.UpdatedAt())
	})

	t.Run("success is final", func(t *testing.T) {
		i, err := payment.NewIntent(uuid.New(), "paystack", "SL-1", 100, "NGN", now)
		require.NoError(t, err)
		require.NoError(t, i.MarkSucceeded(nil, now))

		assert.ErrorIs(t, i.MarkSucceeded(nil, now), payment.ErrAlreadySucceeded)
		assert.ErrorIs(t, i.MarkFailed(nil, now), payment.ErrAlreadySucceeded)
		assert.True(t, errs.Is(i.MarkFailed(nil, now), errs.ErrDuplicateEvent))
		assert.Equal(t, payment.StatusSucceeded, i.Status())
	})

	t.Run("empty payload keeps the previous one", func(t *testing.T) {
		i, err := payment.FromEvent(payment.ProviderEvent{
			Provider:  "paystack",
			Reference: "SL-1",
			BookingID: uuid.New(),
			Outcome:   payment.OutcomeSucceeded,
			Amount:    100,
			Currency:  "NGN",
			Raw:       json.RawMessage(`{"event":"charge.success"}`),
		}, now)
		require.NoError(t, err)
		require.NoError(t, i.MarkFailed(nil, now))
		assert.JSONEq(t, `{"event":"charge.success"}`, string(i.RawPayload()))
	})
}

func TestProviderEvent(t *testing.T) {
	tests := []struct {
		name  string
		event payment.ProviderEvent
		errIs error
	}{
		{name: "valid", event: payment.ProviderEvent{Reference: "SL-1", Outcome: payment.OutcomeAbandoned}},
		{name: "blank reference", event: payment.ProviderEvent{Reference: " ", Outcome: payment.OutcomeSucceeded}, errIs: payment.ErrEmptyReference},
		{name: "unknown outcome", event: payment.ProviderEvent{Reference: "SL-1", Outcome: "reversed"}, errIs: payment.ErrUnknownOutcome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
		})
	}

	e := payment.ProviderEvent{Amount: 160_000, Currency: "ngn"}
	assert.True(t, e.Matches(160_000, "NGN"))
	assert.False(t, e.Matches(159_999, "NGN"))
	assert.False(t, e.Matches(160_000, "USD"))
}

func TestNewReference(t *testing.T) {
	bookingID := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	pattern := regexp.MustCompile(`^SL-3F2A9C1E-[0-9a-f]{12}$`)

	a := payment.NewReference(bookingID)
	b := payment.NewReference(bookingID)
	assert.Regexp(t, pattern, a)
	assert.Regexp(t, pattern, b)
	assert.NotEqual(t, a, b)
}
