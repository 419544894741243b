package reversals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
	"prosper-backend/internal/pkg/apperrors"
)

type Service struct {
	DB *gorm.DB
}

type CreateReversalInput struct {
	OriginalRecordType string
	OriginalRecordID   uuid.UUID
	Reason             string
}

// CreateReversal appends an audit correction pointing at a prior record. The
// original is never touched; every aggregation pass that runs afterwards
// excludes it. Allocations computed before the reversal keep their snapshots.
func (s *Service) CreateReversal(ctx context.Context, in CreateReversalInput) (*domain.Reversal, error) {
	if !ledger.ValidRecordType(in.OriginalRecordType) {
		return nil, apperrors.E(apperrors.InvalidReference, "unknown original_record_type %q", in.OriginalRecordType)
	}
	reversal := domain.Reversal{
		OriginalRecordType: in.OriginalRecordType,
		OriginalRecordID:   in.OriginalRecordID,
		Reason:             in.Reason,
	}
	if err := s.DB.WithContext(ctx).Create(&reversal).Error; err != nil {
		return nil, err
	}
	return &reversal, nil
}
