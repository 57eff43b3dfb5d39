package score

import (
	"context"

	"go.uber.org/zap"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/session"
)

// SessionFinder resolves a submission to the session it was issued for.
type SessionFinder interface {
	Find(ctx context.Context, tournamentID, userID string) (*session.GameSession, error)
}

// ChangeNotifier is told after every accepted submission so connected
// viewers get a fresh ranked view.
type ChangeNotifier interface {
	NotifyChange()
}

type ScoreService struct {
	repo     ScoreRepository
	sessions SessionFinder
	notifier ChangeNotifier
}

func NewScoreService(repo ScoreRepository, sessions SessionFinder, notifier ChangeNotifier) *ScoreService {
	return &ScoreService{
		repo:     repo,
		sessions: sessions,
		notifier: notifier,
	}
}

// Submit validates and stores a vendor score submission, then notifies
// the broadcast hub. The store write happens before the notification so
// a viewer can always fetch what it was just pushed. Submissions must
// reference an existing, non-expired session.
func (s *ScoreService) Submit(ctx context.Context, req *SubmissionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.sessions.Find(ctx, req.TournamentID, req.UserID); err != nil {
		logger.Warn("score submission for unknown session rejected",
			zap.String("tournament_id", req.TournamentID),
			zap.String("user_id", req.UserID))
		return err
	}

	record := &ScoreRecord{
		UserID:       req.UserID,
		TournamentID: req.TournamentID,
		GameID:       req.GameID,
		Score:        *req.Score,
		Time:         *req.Time,
		IsValid:      *req.IsValid,
	}

	if err := s.repo.Append(ctx, record); err != nil {
		return err
	}

	if !record.IsValid {
		// Stored for fraud review, excluded from every ranking.
		logger.Warn("invalid score stored",
			zap.String("user_id", record.UserID),
			zap.Int("score", record.Score))
	}

	s.notifier.NotifyChange()
	return nil
}

func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]RankedEntry, error) {
	return s.repo.TopRanked(ctx, limit)
}

func (r *SubmissionRequest) Validate() error {
	if r.Score == nil || r.Time == nil || r.IsValid == nil {
		return apperrors.NewAppError(400, "Invalid score data format", nil)
	}
	if r.UserID == "" || r.TournamentID == "" {
		return apperrors.NewAppError(400, "user_id and tournament_id are required", nil)
	}
	return nil
}
