package partner

import (
	"context"
	"errors"
	"strings"
)

// Service defines business logic for partners and their audit trail.
type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Partner, error)
	GetByID(ctx context.Context, id string) (*Partner, error)
	GetByUserID(ctx context.Context, userID string) (*Partner, error)
	List(ctx context.Context, filter Filter) ([]*Partner, int, error)
	UpdateByUserID(ctx context.Context, userID string, req UpdateRequest) (*Partner, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Partner, error)
	Delete(ctx context.Context, id string) error

	// IsBookable reports whether the partner exists and is active. A
	// missing partner is not an error, it is simply not bookable.
	IsBookable(ctx context.Context, id string) (bool, error)

	AppendAuditLog(ctx context.Context, partnerID, bookingID, action string) error
	// AppendAuditLogOnce writes the entry at most once per dedupe key,
	// so retried operations do not duplicate their audit trail.
	AppendAuditLogOnce(ctx context.Context, partnerID, bookingID, action, dedupeKey string) error
	ListAuditLog(ctx context.Context, partnerID string, page, pageSize int) ([]*AuditEntry, int, error)
}

// CreateRequest carries the fields for a new partner profile.
type CreateRequest struct {
	CompanyName string
	Phone       *string
}

// UpdateRequest carries the partner-editable fields. Nil means unchanged.
type UpdateRequest struct {
	CompanyName *string
	Phone       *string
}

type service struct {
	repo Repository
}

// NewService creates a new partner Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Partner, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return nil, ErrCompanyNameRequired
	}

	p := &Partner{
		UserID:      userID,
		CompanyName: companyName,
		Phone:       req.Phone,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Partner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Partner, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Partner, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateByUserID(ctx context.Context, userID string, req UpdateRequest) (*Partner, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		companyName := strings.TrimSpace(*req.CompanyName)
		if companyName == "" {
			return nil, ErrCompanyNameRequired
		}
		p.CompanyName = companyName
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Partner, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) IsBookable(ctx context.Context, id string) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.Status == StatusActive, nil
}

func (s *service) AppendAuditLog(ctx context.Context, partnerID, bookingID, action string) error {
	return s.repo.AppendAudit(ctx, newAuditEntry(partnerID, bookingID, action), nil)
}

func (s *service) AppendAuditLogOnce(ctx context.Context, partnerID, bookingID, action, dedupeKey string) error {
	return s.repo.AppendAudit(ctx, newAuditEntry(partnerID, bookingID, action), &dedupeKey)
}

func (s *service) ListAuditLog(ctx context.Context, partnerID string, page, pageSize int) ([]*AuditEntry, int, error) {
	return s.repo.ListAudit(ctx, partnerID, page, pageSize)
}

func newAuditEntry(partnerID, bookingID, action string) *AuditEntry {
	e := &AuditEntry{
		PartnerID: partnerID,
		Action:    action,
	}
	if bookingID != "" {
		e.BookingID = &bookingID
	}
	return e
}
