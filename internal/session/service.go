package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cocobridge/penguinhop/internal/apperrors"
)

// SessionTTL is how long a freshly issued session stays valid.
const SessionTTL = time.Hour

// NewTournamentID generates a fresh session identifier. A UUIDv4 carries
// 122 random bits, so collisions are negligible. Exposed as a variable so
// tests can stub it.
var NewTournamentID = func() string {
	return uuid.NewString()
}

type SessionService struct {
	repo SessionRepository
}

func NewSessionService(repo SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Create(ctx context.Context, userID, gameID string) (*GameSession, error) {
	session := &GameSession{
		TournamentID: NewTournamentID(),
		UserID:       userID,
		GameID:       gameID,
		UserName:     displayName(userID),
		ExpiresAt:    time.Now().Add(SessionTTL),
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) Find(ctx context.Context, tournamentID, userID string) (*GameSession, error) {
	session, err := s.repo.Find(ctx, tournamentID, userID)
	if err != nil {
		return nil, err
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return nil, apperrors.NewAppError(404, "Game session expired", nil)
	}

	return session, nil
}

func displayName(userID string) string {
	if len(userID) > 8 {
		return userID[:8]
	}
	return userID
}
