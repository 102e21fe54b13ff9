package auth

import (
	"context"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// SessionRepository persists issued bearer tokens.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Deactivate marks the caller's session for tokenID inactive. It reports
// whether a live row was found.
func (r *SessionRepository) Deactivate(ctx context.Context, userID uint, tokenID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserSession{}).
		Where("user_id = ? AND token_id = ? AND is_active = ?", userID, tokenID, true).
		Update("is_active", false)
	return res.RowsAffected > 0, res.Error
}
