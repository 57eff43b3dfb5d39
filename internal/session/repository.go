package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/logger"
)

type SessionRepository interface {
	Save(ctx context.Context, session *GameSession) error
	Find(ctx context.Context, tournamentID, userID string) (*GameSession, error)
}

type GormSessionRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewSessionRepository(db *gorm.DB, rdb *redis.Client) *GormSessionRepository {
	return &GormSessionRepository{db: db, rdb: rdb}
}

func sessionKey(tournamentID string) string {
	return "session:" + tournamentID
}

// Save inserts the session row and caches it in Redis for the remaining
// session lifetime. The cache write is best effort; Postgres stays the
// source of truth.
func (r *GormSessionRepository) Save(ctx context.Context, session *GameSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return apperrors.NewAppError(500, "Failed to store game session", err)
	}
	r.cacheSession(ctx, session)
	return nil
}

func (r *GormSessionRepository) cacheSession(ctx context.Context, session *GameSession) {
	if r.rdb == nil {
		return
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, sessionKey(session.TournamentID), data, ttl).Err(); err != nil {
		logger.Warn("error caching game session", zap.Error(err))
	}
}

func (r *GormSessionRepository) Find(ctx context.Context, tournamentID, userID string) (*GameSession, error) {
	if cached := r.findCached(ctx, tournamentID, userID); cached != nil {
		return cached, nil
	}

	var session GameSession
	result := r.db.WithContext(ctx).
		Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
		First(&session)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(404, "Invalid game session", result.Error)
	} else if result.Error != nil {
		return nil, apperrors.NewAppError(500, "Failed to look up game session", result.Error)
	}

	return &session, nil
}

func (r *GormSessionRepository) findCached(ctx context.Context, tournamentID, userID string) *GameSession {
	if r.rdb == nil {
		return nil
	}
	val, err := r.rdb.Get(ctx, sessionKey(tournamentID)).Result()
	if err == redis.Nil {
		return nil
	} else if err != nil {
		logger.Warn("error reading session cache", zap.Error(err))
		return nil
	}

	var session GameSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil
	}
	if session.UserID != userID {
		return nil
	}
	return &session
}
