package session

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionRepositoryMock struct {
	mock.Mock
}

func (m *SessionRepositoryMock) Save(ctx context.Context, session *GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepositoryMock) Find(ctx context.Context, tournamentID, userID string) (*GameSession, error) {
	args := m.Called(ctx, tournamentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameSession), args.Error(1)
}
