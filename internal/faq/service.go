package faq

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Question string
	Answer   string
	Position int
}

type UpdateRequest struct {
	Question *string
	Answer   *string
	Position *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Faq, error)
	GetByID(ctx context.Context, id string) (*Faq, error)
	List(ctx context.Context, filter Filter) ([]*Faq, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Faq, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Faq, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrQuestionRequired
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, ErrAnswerRequired
	}

	f := &Faq{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Faq, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Faq, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Faq, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Question != nil {
		if strings.TrimSpace(*req.Question) == "" {
			return nil, ErrQuestionRequired
		}
		f.Question = *req.Question
	}

	if req.Answer != nil {
		if strings.TrimSpace(*req.Answer) == "" {
			return nil, ErrAnswerRequired
		}
		f.Answer = *req.Answer
	}

	if req.Position != nil {
		f.Position = *req.Position
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
