//go:build unit

package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/infra/mailer"
	"shortlet-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m...)
	return nil
}

func rendered(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func confirmedMessage() notification.Message {
	return notification.Message{
		To:      "guest@example.com",
		Name:    "Ada",
		Topic:   notification.TopicBookingConfirmed,
		Payload: []byte(`{"type":"booking_confirmed","subject_id":"b-1","check_in":"2026-03-10"}`),
	}
}

func TestNotify(t *testing.T) {
	sender := &recordingSender{}
	n := mailer.NewNotifierWithSender(sender, "bookings@shortlet.local")

	require.NoError(t, n.Notify(context.Background(), confirmedMessage()))

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{"bookings@shortlet.local"}, m.GetHeader("From"))
	assert.Equal(t, []string{"Your booking is confirmed"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{`"Ada" <guest@example.com>`}, m.GetHeader("To"))
	assert.Contains(t, rendered(t, m), "check_in: 2026-03-10")
}

func TestNotify_Errors(t *testing.T) {
	t.Run("no recipient address", func(t *testing.T) {
		sender := &recordingSender{}
		msg := confirmedMessage()
		msg.To = ""

		err := mailer.NewNotifierWithSender(sender, "bookings@shortlet.local").Notify(context.Background(), msg)

		assert.ErrorContains(t, err, "no recipient")
		assert.Empty(t, sender.sent)
	})

	t.Run("smtp failure", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("535 authentication failed")}

		err := mailer.NewNotifierWithSender(sender, "bookings@shortlet.local").Notify(context.Background(), confirmedMessage())

		assert.ErrorContains(t, err, "535 authentication failed")
		assert.ErrorContains(t, err, "guest@example.com")
	})
}

func TestNotify_DisabledOnlyLogs(t *testing.T) {
	n := mailer.NewSMTPNotifier(config.MailConfig{From: "bookings@shortlet.local"})

	assert.NoError(t, n.Notify(context.Background(), confirmedMessage()))
}

func TestSubject(t *testing.T) {
	tests := []struct {
		topic notification.Topic
		want  string
	}{
		{notification.TopicBookingExpired, "Your booking hold has expired"},
		{notification.TopicBookingAwaitingHost, "A booking is waiting for host approval"},
		{notification.TopicRefundRequired, "A payment needs to be refunded"},
		{notification.TopicPayoutPaid, "A payout has been sent"},
		{notification.Topic("something_new"), "Booking update"},
	}
	for _, tt := range tests {
		t.Run(string(tt.topic), func(t *testing.T) {
			assert.Equal(t, tt.want, mailer.Subject(tt.topic))
		})
	}
}

func TestBody(t *testing.T) {
	t.Run("fields in key order without the type", func(t *testing.T) {
		msg := notification.Message{
			Name:    "Ada",
			Topic:   notification.TopicPayoutEligible,
			Payload: []byte(`{"type":"payout_eligible","subject_id":"p-1","amount":160000,"currency":"NGN"}`),
		}

		want := "Hello Ada,\n\n" +
			"A payout is ready.\n\n" +
			"amount: 160000\n" +
			"currency: NGN\n" +
			"subject_id: p-1\n"
		assert.Equal(t, want, mailer.Body(msg))
	})

	t.Run("unreadable payload keeps the headline", func(t *testing.T) {
		msg := notification.Message{Topic: notification.TopicBookingDeclined, Payload: []byte(`not json`)}

		assert.Equal(t, "Your booking request was declined.\n\n", mailer.Body(msg))
	})
}
