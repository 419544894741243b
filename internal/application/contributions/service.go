package contributions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/pkg/apperrors"
)

// ErrInvalidWindowDates is returned when a window's end does not come after
// its start.
var ErrInvalidWindowDates = errors.New("end_at must be after start_at")

type Service struct {
	DB *gorm.DB
}

type CreateWindowInput struct {
	Name      string
	StartAt   time.Time
	EndAt     time.Time
	MinAmount decimal.Decimal
	MaxAmount *decimal.Decimal
}

// CreateWindow records a contribution policy period. Windows are immutable
// once created.
func (s *Service) CreateWindow(ctx context.Context, in CreateWindowInput) (*domain.ContributionWindow, error) {
	if !in.EndAt.After(in.StartAt) {
		return nil, ErrInvalidWindowDates
	}
	if in.MinAmount.IsNegative() {
		return nil, apperrors.E(apperrors.InvalidAmount, "min_amount must not be negative")
	}
	if in.MaxAmount != nil && in.MaxAmount.LessThan(in.MinAmount) {
		return nil, apperrors.E(apperrors.InvalidAmount, "max_amount must not be below min_amount")
	}
	window := domain.ContributionWindow{
		Name:      in.Name,
		StartAt:   in.StartAt,
		EndAt:     in.EndAt,
		MinAmount: in.MinAmount,
		MaxAmount: in.MaxAmount,
	}
	if err := s.DB.WithContext(ctx).Create(&window).Error; err != nil {
		return nil, err
	}
	return &window, nil
}

// ListWindows returns the most recent windows, newest first.
func (s *Service) ListWindows(ctx context.Context) ([]domain.ContributionWindow, error) {
	var windows []domain.ContributionWindow
	err := s.DB.WithContext(ctx).Order("start_at DESC").Limit(100).Find(&windows).Error
	return windows, err
}

type RecordContributionInput struct {
	MemberID   uuid.UUID
	WindowID   uuid.UUID
	Amount     decimal.Decimal
	RecordedAt *time.Time
}

// RecordContribution appends a savings payment. All validation happens before
// the write; the row is immutable afterwards and only a Reversal can counter it.
func (s *Service) RecordContribution(ctx context.Context, in RecordContributionInput) (*domain.Contribution, error) {
	var contribution domain.Contribution
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member domain.Member
		if err := tx.Where("member_id = ?", in.MemberID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "member %s not found", in.MemberID)
			}
			return err
		}
		var window domain.ContributionWindow
		if err := tx.Where("window_id = ?", in.WindowID).First(&window).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "contribution window %s not found", in.WindowID)
			}
			return err
		}
		if !in.Amount.IsPositive() {
			return apperrors.E(apperrors.InvalidAmount, "amount must be positive")
		}
		if in.Amount.LessThan(window.MinAmount) {
			return apperrors.E(apperrors.InvalidAmount, "amount below window min_amount %s", window.MinAmount)
		}
		if window.MaxAmount != nil && in.Amount.GreaterThan(*window.MaxAmount) {
			return apperrors.E(apperrors.InvalidAmount, "amount above window max_amount %s", window.MaxAmount)
		}
		recordedAt := time.Now()
		if in.RecordedAt != nil {
			recordedAt = *in.RecordedAt
		}
		contribution = domain.Contribution{
			MemberID:   member.MemberID,
			WindowID:   window.WindowID,
			Amount:     in.Amount,
			RecordedAt: recordedAt,
		}
		return tx.Create(&contribution).Error
	})
	if err != nil {
		return nil, err
	}
	return &contribution, nil
}

type RecordPenaltyInput struct {
	MemberID   uuid.UUID
	Amount     decimal.Decimal
	Reason     string
	WindowID   *uuid.UUID
	RecordedAt *time.Time
}

// RecordPenalty appends a late or out-of-bounds fee. Same immutability policy
// as contributions.
func (s *Service) RecordPenalty(ctx context.Context, in RecordPenaltyInput) (*domain.Penalty, error) {
	var penalty domain.Penalty
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member domain.Member
		if err := tx.Where("member_id = ?", in.MemberID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "member %s not found", in.MemberID)
			}
			return err
		}
		if !in.Amount.IsPositive() {
			return apperrors.E(apperrors.InvalidAmount, "amount must be positive")
		}
		if in.WindowID != nil {
			var window domain.ContributionWindow
			if err := tx.Where("window_id = ?", in.WindowID).First(&window).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.E(apperrors.NotFound, "contribution window %s not found", in.WindowID)
				}
				return err
			}
		}
		recordedAt := time.Now()
		if in.RecordedAt != nil {
			recordedAt = *in.RecordedAt
		}
		penalty = domain.Penalty{
			MemberID:   member.MemberID,
			WindowID:   in.WindowID,
			Amount:     in.Amount,
			Reason:     in.Reason,
			RecordedAt: recordedAt,
		}
		return tx.Create(&penalty).Error
	})
	if err != nil {
		return nil, err
	}
	return &penalty, nil
}
