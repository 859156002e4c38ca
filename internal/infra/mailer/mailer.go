package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

var subjects = map[notification.Topic]string{
	notification.TopicBookingExpired:      "Your booking hold has expired",
	notification.TopicBookingConfirmed:    "Your booking is confirmed",
	notification.TopicBookingAwaitingHost: "A booking is waiting for host approval",
	notification.TopicBookingDeclined:     "Your booking request was declined",
	notification.TopicBookingCancelled:    "A booking was cancelled",
	notification.TopicRefundRequired:      "A payment needs to be refunded",
	notification.TopicPayoutEligible:      "A payout is ready",
	notification.TopicPayoutPaid:          "A payout has been sent",
}

// Sender is the subset of gomail.Dialer the mailer needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier delivers outbox jobs as plain email. Without an SMTP host it
// only logs what it would have sent.
type SMTPNotifier struct {
	sender Sender
	from   string
}

func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	n := &SMTPNotifier{from: cfg.From}
	if cfg.Enabled() {
		n.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return n
}

func NewNotifierWithSender(sender Sender, from string) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from}
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg notification.Message) error {
	if msg.To == "" {
		return errs.Newf("notification %s has no recipient address", msg.Topic)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetAddressHeader("To", msg.To, msg.Name)
	m.SetHeader("Subject", Subject(msg.Topic))
	m.SetBody("text/plain", Body(msg))

	if n.sender == nil {
		slog.InfoContext(ctx, "mail disabled, notification logged only",
			"to", msg.To,
			"topic", string(msg.Topic))
		return nil
	}

	if err := n.sender.DialAndSend(m); err != nil {
		return errs.Wrapf(err, "send %s to %s", msg.Topic, msg.To)
	}
	return nil
}

func Subject(topic notification.Topic) string {
	if s, ok := subjects[topic]; ok {
		return s
	}
	return "Booking update"
}

// Body renders the payload as "key: value" lines in key order.
func Body(msg notification.Message) string {
	var b strings.Builder
	if msg.Name != "" {
		fmt.Fprintf(&b, "Hello %s,\n\n", msg.Name)
	}
	b.WriteString(Subject(msg.Topic))
	b.WriteString(".\n\n")

	var fields map[string]any
	if err := json.Unmarshal(msg.Payload, &fields); err != nil {
		return b.String()
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "type" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, fields[k])
	}
	return b.String()
}
