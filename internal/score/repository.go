package score

import (
	"context"

	"gorm.io/gorm"

	"github.com/cocobridge/penguinhop/internal/apperrors"
)

type ScoreRepository interface {
	Append(ctx context.Context, record *ScoreRecord) error
	TopRanked(ctx context.Context, limit int) ([]RankedEntry, error)
}

type GormScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *GormScoreRepository {
	return &GormScoreRepository{db: db}
}

func (r *GormScoreRepository) Append(ctx context.Context, record *ScoreRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.NewAppError(500, "Failed to store score", err)
	}
	return nil
}

// The qualifying row for a player is the earliest record that achieved
// the player's best valid score; ties between players break toward the
// earlier record id.
const topRankedQuery = `
SELECT s.user_id, s.score AS best_score, s.time, s.created_at
FROM scores s
JOIN (
	SELECT user_id, MAX(score) AS best_score
	FROM scores
	WHERE is_valid = ?
	GROUP BY user_id
) best ON best.user_id = s.user_id AND best.best_score = s.score
WHERE s.is_valid = ?
AND s.id = (
	SELECT MIN(s2.id)
	FROM scores s2
	WHERE s2.user_id = s.user_id AND s2.score = s.score AND s2.is_valid = ?
)
ORDER BY s.score DESC, s.id ASC
LIMIT ?`

func (r *GormScoreRepository) TopRanked(ctx context.Context, limit int) ([]RankedEntry, error) {
	entries := []RankedEntry{}
	err := r.db.WithContext(ctx).Raw(topRankedQuery, true, true, true, limit).Scan(&entries).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "Failed to compute leaderboard", err)
	}
	return entries, nil
}
