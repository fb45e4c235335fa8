package sqldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) CreateCode(ctx context.Context, c *domain.AssessmentCode) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCodeExists
		}
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) FindCode(ctx context.Context, code string) (*domain.AssessmentCode, error) {
	var c domain.AssessmentCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	return &c, nil
}

func (r *AssessmentRepository) ListCodes(ctx context.Context) ([]domain.AssessmentCode, error) {
	var codes []domain.AssessmentCode
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	return codes, nil
}

func (r *AssessmentRepository) DeactivateCode(ctx context.Context, code string) error {
	return r.updateCode(ctx, code, map[string]any{"active": false})
}

// DeleteCode removes the code together with its sessions and their responses.
func (r *AssessmentRepository) DeleteCode(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := tx.Model(&domain.AssessmentSession{}).Select("id").Where("code = ?", code)
		if err := tx.Where("session_id IN (?)", sessions).Delete(&domain.AssessmentResponse{}).Error; err != nil {
			return fmt.Errorf("delete responses: %w", err)
		}
		if err := tx.Where("code = ?", code).Delete(&domain.AssessmentSession{}).Error; err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		res := tx.Where("code = ?", code).Delete(&domain.AssessmentCode{})
		if res.Error != nil {
			return fmt.Errorf("delete code: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrCodeNotFound
		}
		return nil
	})
}

// IncrementCodeUse applies the use limit in the UPDATE itself so concurrent
// session starts cannot push a code past max_uses.
func (r *AssessmentRepository) IncrementCodeUse(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Model(&domain.AssessmentCode{}).
		Where("code = ? AND (max_uses = 0 OR use_count < max_uses)", code).
		Update("use_count", gorm.Expr("use_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment code use: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if _, err := r.FindCode(ctx, code); err != nil {
		return err
	}
	return domain.ErrCodeExhausted
}

func (r *AssessmentRepository) MarkCodeCompleted(ctx context.Context, code string, at time.Time) error {
	return r.updateCode(ctx, code, map[string]any{"completed_at": at})
}

func (r *AssessmentRepository) updateCode(ctx context.Context, code string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.AssessmentCode{}).Where("code = ?", code).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update code: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCodeNotFound
	}
	return nil
}

func (r *AssessmentRepository) CreateSession(ctx context.Context, s *domain.AssessmentSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) FindSession(ctx context.Context, id string) (*domain.AssessmentSession, error) {
	var s domain.AssessmentSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *AssessmentRepository) CompleteSession(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.AssessmentSession{}).
		Where("id = ? AND status = ?", id, domain.SessionInProgress).
		Updates(map[string]any{"status": domain.SessionCompleted, "completed_at": at})
	if res.Error != nil {
		return fmt.Errorf("complete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindSession(ctx, id); err != nil {
			return err
		}
		return domain.ErrSessionCompleted
	}
	return nil
}

type responseTally struct {
	SessionID string
	Total     int64
}

func (r *AssessmentRepository) ListSessions(ctx context.Context, code string) ([]domain.AssessmentSession, error) {
	db := r.db.WithContext(ctx)

	var sessions []domain.AssessmentSession
	if err := db.Where("code = ?", code).Order("started_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}

	var tallies []responseTally
	err := db.Model(&domain.AssessmentResponse{}).
		Select("session_id, COUNT(*) AS total").
		Where("session_id IN ?", ids).
		Group("session_id").
		Scan(&tallies).Error
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}

	counts := make(map[string]int64, len(tallies))
	for _, t := range tallies {
		counts[t.SessionID] = t.Total
	}
	for i := range sessions {
		sessions[i].ResponseCount = counts[sessions[i].ID]
	}
	return sessions, nil
}

func (r *AssessmentRepository) CreateResponse(ctx context.Context, resp *domain.AssessmentResponse) error {
	if err := r.db.WithContext(ctx).Create(resp).Error; err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) ListResponses(ctx context.Context, sessionID string) ([]domain.AssessmentResponse, error) {
	var out []domain.AssessmentResponse
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return out, nil
}
