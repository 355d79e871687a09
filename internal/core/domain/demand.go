package domain

import (
	"errors"
	"time"
)

// DemandStatus represents the lifecycle state of a service demand.
// The values are the canonical wire representation.
type DemandStatus string

const (
	StatusPending    DemandStatus = "en-attente"
	StatusInProgress DemandStatus = "en-cours"
	StatusCompleted  DemandStatus = "terminee"
	StatusCancelled  DemandStatus = "annulee"
)

// validTransitions defines the allowed state machine transitions. A pending
// demand may be completed directly, without passing through en-cours.
// Terminal states (terminee, annulee) have no outgoing edges.
var validTransitions = map[DemandStatus][]DemandStatus{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

var ErrDemandNotFound = errors.New("demand not found")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrMissingFields = errors.New("missing required fields")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is one of the four known status values.
func (s DemandStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is expected from s.
func (s DemandStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s DemandStatus) CanTransitionTo(next DemandStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusHistoryEntry records a single status change applied to a demand.
type StatusHistoryEntry struct {
	Status    DemandStatus `json:"status" bson:"status"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
}

// Demand is the core aggregate: a work request owned by exactly one user.
// UserID and CreatedAt never change after creation.
type Demand struct {
	ID                string               `json:"id" bson:"_id,omitempty"`
	UserID            string               `json:"userId" bson:"user_id"`
	Title             string               `json:"title" bson:"title"`
	Category          string               `json:"category" bson:"category"`
	Description       string               `json:"description" bson:"description"`
	Budget            string               `json:"budget,omitempty" bson:"budget,omitempty"`
	Deadline          *time.Time           `json:"deadline,omitempty" bson:"deadline,omitempty"`
	ContactPreference string               `json:"contactPreference" bson:"contact_preference"`
	Status            DemandStatus         `json:"status" bson:"status"`
	Files             []string             `json:"files" bson:"files"`
	AdminResponse     string               `json:"adminResponse,omitempty" bson:"admin_response,omitempty"`
	StatusHistory     []StatusHistoryEntry `json:"statusHistory,omitempty" bson:"status_history,omitempty"`
	CreatedAt         time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updated_at"`
}

// OwnerInfo is the expanded owner identity attached to admin views of a demand.
type OwnerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
