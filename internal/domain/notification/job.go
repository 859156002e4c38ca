package notification

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicBookingExpired      Topic = "booking_expired"
	TopicBookingConfirmed    Topic = "booking_confirmed"
	TopicBookingAwaitingHost Topic = "booking_awaiting_host"
	TopicBookingDeclined     Topic = "booking_declined"
	TopicBookingCancelled    Topic = "booking_cancelled"
	TopicRefundRequired      Topic = "refund_required"
	TopicPayoutEligible      Topic = "payout_eligible"
	TopicPayoutPaid          Topic = "payout_paid"
)

const KindEmail = "email"

type JobStatus string

const (
	JobQueued JobStatus = "queued"
	JobSent   JobStatus = "sent"
	JobFailed JobStatus = "failed"
)

// Job is one outbox row. DedupeKey is unique, so enqueuing the same
// (subject, topic, recipient) twice leaves a single row.
type Job struct {
	ID          uuid.UUID
	Kind        string
	Topic       Topic
	DedupeKey   string
	RecipientID uuid.UUID
	SubjectID   uuid.UUID
	Payload     []byte
	RunAt       time.Time
	Attempts    int32
	Status      JobStatus
	LastError   *string
}

// SubjectKind is the kind of record a topic is about.
func (t Topic) SubjectKind() string {
	if strings.HasPrefix(string(t), "payout_") {
		return "payout"
	}
	return "booking"
}

// DedupeKey identifies a notification by subject, topic and recipient,
// e.g. booking:{id}:booking_expired:{guestID}.
func DedupeKey(subjectID uuid.UUID, topic Topic, recipientID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s:%s", topic.SubjectKind(), subjectID, topic, recipientID)
}

func NewJob(subjectID uuid.UUID, topic Topic, recipientID uuid.UUID, payload map[string]any, runAt time.Time) (Job, error) {
	body := map[string]any{
		"subject_id": subjectID,
		"type":       string(topic),
	}
	for k, v := range payload {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return Job{}, err
	}
	return Job{
		ID:          uuid.New(),
		Kind:        KindEmail,
		Topic:       topic,
		DedupeKey:   DedupeKey(subjectID, topic, recipientID),
		RecipientID: recipientID,
		SubjectID:   subjectID,
		Payload:     raw,
		RunAt:       runAt,
		Status:      JobQueued,
	}, nil
}

// Message is what a Notifier receives for delivery.
type Message struct {
	To      string
	Name    string
	Topic   Topic
	Payload []byte
}
