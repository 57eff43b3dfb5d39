package access

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/mock"

	"github.com/cocobridge/penguinhop/internal/session"
)

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) OwnsToken(ctx context.Context, wallet string) (bool, error) {
	args := m.Called(ctx, wallet)
	return args.Bool(0), args.Error(1)
}

type SessionCreatorMock struct {
	mock.Mock
}

func (m *SessionCreatorMock) Create(ctx context.Context, userID, gameID string) (*session.GameSession, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.GameSession), args.Error(1)
}

type ContractCallerMock struct {
	mock.Mock
}

func (m *ContractCallerMock) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	args := m.Called(ctx, msg, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
