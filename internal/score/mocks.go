package score

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cocobridge/penguinhop/internal/session"
)

type ScoreRepositoryMock struct {
	mock.Mock
}

func (m *ScoreRepositoryMock) Append(ctx context.Context, record *ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *ScoreRepositoryMock) TopRanked(ctx context.Context, limit int) ([]RankedEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RankedEntry), args.Error(1)
}

type SessionFinderMock struct {
	mock.Mock
}

func (m *SessionFinderMock) Find(ctx context.Context, tournamentID, userID string) (*session.GameSession, error) {
	args := m.Called(ctx, tournamentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.GameSession), args.Error(1)
}

type ChangeNotifierMock struct {
	mock.Mock
}

func (m *ChangeNotifierMock) NotifyChange() {
	m.Called()
}
