package exits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
	"prosper-backend/internal/pkg/apperrors"
)

// exitQueueLockID keys the advisory transaction lock that serializes
// queue-position assignment across concurrent requests.
const exitQueueLockID int64 = 0x70726f7370657871 // "prosperq"

type Service struct {
	DB *gorm.DB
}

// CreateExitRequest queues a withdrawal request. The position is one past the
// highest position among queued, non-reversed requests; prior positions are
// never renumbered. The entitlement is snapshotted at request time and not
// recomputed later.
func (s *Service) CreateExitRequest(ctx context.Context, memberID uuid.UUID) (*domain.ExitRequest, error) {
	var request domain.ExitRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member domain.Member
		if err := tx.Where("member_id = ?", memberID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "member %s not found", memberID)
			}
			return err
		}

		reversed, err := ledger.LoadReversals(tx)
		if err != nil {
			return err
		}

		// Serialize position assignment through an advisory transaction
		// lock: row locks cannot cover the empty-queue case, and READ
		// COMMITTED would let two transactions read the same max. SQLite
		// (tests) serializes writers on its own and has no advisory locks.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", exitQueueLockID).Error; err != nil {
				return err
			}
		}
		var queued []domain.ExitRequest
		if err := tx.Where("status = ?", domain.ExitQueued).Find(&queued).Error; err != nil {
			return err
		}
		position := 0
		for _, r := range queued {
			if reversed.Reversed(ledger.RecordExitRequest, r.ExitRequestID) {
				continue
			}
			if r.QueuePosition > position {
				position = r.QueuePosition
			}
		}

		savings, err := ledger.LoadSavingsLedger(tx)
		if err != nil {
			return err
		}

		request = domain.ExitRequest{
			MemberID:       member.MemberID,
			RequestedAt:    time.Now(),
			QueuePosition:  position + 1,
			Status:         domain.ExitQueued,
			AmountEntitled: savings.MemberEntitlement(member.MemberID),
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FulfillExitRequest finalizes a queued request: status becomes fulfilled,
// fulfilled_at is stamped, and the entitlement may be overridden with the
// negotiated settlement value. This is the sole mutation path in the ledger
// domain; it finalizes a pending request rather than correcting history.
func (s *Service) FulfillExitRequest(ctx context.Context, id uuid.UUID, amountEntitled *decimal.Decimal) (*domain.ExitRequest, error) {
	return s.transition(ctx, id, domain.ExitFulfilled, amountEntitled)
}

// CancelExitRequest moves a queued request to the cancelled terminal state.
func (s *Service) CancelExitRequest(ctx context.Context, id uuid.UUID) (*domain.ExitRequest, error) {
	return s.transition(ctx, id, domain.ExitCancelled, nil)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target string, amountEntitled *decimal.Decimal) (*domain.ExitRequest, error) {
	var request domain.ExitRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exit_request_id = ?", id).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "exit request %s not found", id)
			}
			return err
		}
		if request.Status != domain.ExitQueued {
			return apperrors.E(apperrors.InvalidStateTransition, "exit request %s is %s, not queued", id, request.Status)
		}
		request.Status = target
		if target == domain.ExitFulfilled {
			now := time.Now()
			request.FulfilledAt = &now
		}
		if amountEntitled != nil {
			request.AmountEntitled = *amountEntitled
		}
		// The status predicate makes the write the real guard: if another
		// transition landed between the read and this update, zero rows
		// match and the request keeps its single terminal state.
		res := tx.Model(&domain.ExitRequest{}).
			Where("exit_request_id = ? AND status = ?", id, domain.ExitQueued).
			Updates(map[string]interface{}{
				"status":          request.Status,
				"fulfilled_at":    request.FulfilledAt,
				"amount_entitled": request.AmountEntitled,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.E(apperrors.InvalidStateTransition, "exit request %s is no longer queued", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListQueue returns non-reversed exit requests ordered by queue position, then
// most recent request first among equal positions.
func (s *Service) ListQueue(ctx context.Context) ([]domain.ExitRequest, error) {
	var out []domain.ExitRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reversed, err := ledger.LoadReversals(tx)
		if err != nil {
			return err
		}
		var requests []domain.ExitRequest
		if err := tx.Order("queue_position, requested_at DESC").Find(&requests).Error; err != nil {
			return err
		}
		out = make([]domain.ExitRequest, 0, len(requests))
		for _, r := range requests {
			if reversed.Reversed(ledger.RecordExitRequest, r.ExitRequestID) {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
