package subscription

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("subscription not found")
	ErrActiveExists = errors.New("partner already has an active subscription")
	ErrInvalidPlan  = errors.New("invalid subscription plan")
	ErrNotOwner     = errors.New("subscription does not belong to this partner")
	ErrNotActive    = errors.New("subscription is not active")
)

type Plan string

const (
	PlanStarter    Plan = "starter"
	PlanGrowth     Plan = "growth"
	PlanEnterprise Plan = "enterprise"
)

func ValidPlan(p Plan) bool {
	switch p {
	case PlanStarter, PlanGrowth, PlanEnterprise:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Subscription is one partner plan term. A partner holds at most one
// active subscription at a time.
type Subscription struct {
	ID        string
	PartnerID string
	Plan      Plan
	Status    Status
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing subscriptions.
type Filter struct {
	PartnerID string
	Plan      string
	Status    string
	Page      int
	PageSize  int
}
