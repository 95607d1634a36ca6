package client

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("client profile not found")
	ErrAlreadyExists    = errors.New("client profile already exists")
	ErrFullNameRequired = errors.New("full name is required")
)

// Client is the marketplace profile of a user who books parking spots.
// It is keyed by the owning user account.
type Client struct {
	ID            string // UUID
	UserID        string
	FullName      string
	Phone         *string
	LicensePlates []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines filter options for listing client profiles.
type Filter struct {
	FullName string
	Phone    string

	Page      int
	PageSize  int
	SortOrder string
}
