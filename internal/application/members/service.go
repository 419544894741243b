package members

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prosper-backend/internal/constants"
	"prosper-backend/internal/domain"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/validation"
)

var (
	ErrInvalidEmail    = errors.New("A valid email is required")
	ErrInvalidPassword = errors.New("Password must be at least 8 characters with a letter, number and special character")
	ErrEmailTaken      = errors.New("A member with this email already exists")
	ErrInvalidRole     = errors.New("Unknown role")
	ErrMissingBaseRole = errors.New("Roles must include MEMBER")
	ErrInvalidStatus   = errors.New("Unknown member status")
)

type Service struct {
	DB *gorm.DB
}

type CreateMemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	JoinDate  time.Time
	Roles     []string
}

// CreateMember enrolls a participant. Roles default to {MEMBER} and must
// always include the base MEMBER role; anything outside the closed set is
// rejected.
func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (*domain.Member, error) {
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}
	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{constants.RoleMember}
	}
	hasBase := false
	for _, r := range roles {
		if !constants.IsValidRole(r) {
			return nil, ErrInvalidRole
		}
		if r == constants.RoleMember {
			hasBase = true
		}
	}
	if !hasBase {
		return nil, ErrMissingBaseRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := domain.Member{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Status:       domain.MemberActive,
		JoinDate:     in.JoinDate,
	}
	if err := member.SetRoles(roles); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Member
		if err := tx.Where("email = ?", in.Email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMember looks up a member by ID.
func (s *Service) GetMember(ctx context.Context, memberID uuid.UUID) (*domain.Member, error) {
	var member domain.Member
	if err := s.DB.WithContext(ctx).Where("member_id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "member %s not found", memberID)
		}
		return nil, err
	}
	return &member, nil
}

// UpdateMemberStatus applies an admin status transition (active, exited,
// suspended). Member status is the one piece of member state that moves; the
// ledger rows it is referenced by never do.
func (s *Service) UpdateMemberStatus(ctx context.Context, memberID uuid.UUID, status string) (*domain.Member, error) {
	switch status {
	case domain.MemberActive, domain.MemberExited, domain.MemberSuspended:
	default:
		return nil, ErrInvalidStatus
	}
	var member domain.Member
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "member %s not found", memberID)
			}
			return err
		}
		member.Status = status
		return tx.Model(&domain.Member{}).Where("member_id = ?", memberID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}
