package services

import (
	"context"
	"strings"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// MemberService handles member business logic
type MemberService struct {
	memberRepo repositories.MemberRepository
	version    *LedgerVersion
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, version *LedgerVersion) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		version:    version,
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	IDNo     string     `json:"idNo,omitempty"`
	JoinDate *time.Time `json:"joinDate,omitempty"`
}

// Create creates a new member. JoinDate defaults to now when omitted.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	joinDate := time.Now()
	if input.JoinDate != nil {
		joinDate = *input.JoinDate
	}

	member := &models.Member{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Phone:    input.Phone,
		IDNo:     input.IDNo,
		JoinDate: joinDate,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.version.Bump()
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id string) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, offset, limit)
}

// ListAll lists every member
func (s *MemberService) ListAll(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.ListAll(ctx)
}

// UpdateMemberInput represents update member input. Nil fields are
// left unchanged.
type UpdateMemberInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	IDNo  *string `json:"idNo,omitempty"`
}

// Update updates a member
func (s *MemberService) Update(ctx context.Context, id string, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		member.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.IDNo != nil {
		member.IDNo = *input.IDNo
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.version.Bump()
	return member, nil
}

// Delete removes a member. The member's loans, savings and withdrawals
// are left in place and keep referencing the deleted ID.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.version.Bump()
	return nil
}
