package property

import (
	"time"

	"github.com/google/uuid"
)

// Property is the booking-relevant slice of a listing. Listing CRUD lives elsewhere.
type Property struct {
	id        uuid.UUID
	hostID    uuid.UUID
	agentID   *uuid.UUID
	title     string
	rateCard  RateCard
	updatedAt time.Time
}

func ReconstructProperty(id, hostID uuid.UUID, agentID *uuid.UUID, title string, rateCard RateCard, updatedAt time.Time) *Property {
	return &Property{
		id:        id,
		hostID:    hostID,
		agentID:   agentID,
		title:     title,
		rateCard:  rateCard,
		updatedAt: updatedAt,
	}
}

func (p *Property) ID() uuid.UUID        { return p.id }
func (p *Property) HostID() uuid.UUID    { return p.hostID }
func (p *Property) AgentID() *uuid.UUID  { return p.agentID }
func (p *Property) Title() string        { return p.title }
func (p *Property) RateCard() RateCard   { return p.rateCard }
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

// IsManagedBy reports whether actor is the host or the delegated agent.
func (p *Property) IsManagedBy(actor uuid.UUID) bool {
	if actor == p.hostID {
		return true
	}
	return p.agentID != nil && *p.agentID == actor
}
