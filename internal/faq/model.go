package faq

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("faq not found")
	ErrQuestionRequired = errors.New("question is required")
	ErrAnswerRequired   = errors.New("answer is required")
)

// Faq is one question/answer pair shown on the help page. Position
// controls display order, lowest first.
type Faq struct {
	ID        string
	Question  string
	Answer    string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing faqs.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
