package access

import (
	"context"

	"go.uber.org/zap"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/session"
)

type VerifyRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type AccessResponse struct {
	Status       int    `json:"status"`
	TournamentID string `json:"tournament_id"`
	GameID       string `json:"game_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	Token        string `json:"token,omitempty"`
}

// SessionCreator issues a game session once ownership is proven.
type SessionCreator interface {
	Create(ctx context.Context, userID, gameID string) (*session.GameSession, error)
}

type AccessService struct {
	verifier Verifier
	sessions SessionCreator
	gameID   string
}

func NewAccessService(verifier Verifier, sessions SessionCreator, gameID string) *AccessService {
	return &AccessService{
		verifier: verifier,
		sessions: sessions,
		gameID:   gameID,
	}
}

// VerifyAccess checks NFT ownership for the wallet and, when it holds a
// token, issues a fresh game session plus a resume token.
func (s *AccessService) VerifyAccess(ctx context.Context, wallet string) (*AccessResponse, error) {
	if wallet == "" {
		return nil, apperrors.NewAppError(400, "Wallet address is required", nil)
	}

	owns, err := s.verifier.OwnsToken(ctx, wallet)
	if err != nil {
		logger.Error("NFT verification failed", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	if !owns {
		logger.Info("access denied, wallet holds no gating NFT", zap.String("wallet", wallet))
		return nil, apperrors.NewAppError(403, "NFT ownership required to play. You need to own an NFT from this collection.", nil)
	}

	sess, err := s.sessions.Create(ctx, wallet, s.gameID)
	if err != nil {
		return nil, err
	}

	token, err := session.GenerateSessionToken(sess)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error creating session token", err)
	}

	logger.Info("game session issued",
		zap.String("tournament_id", sess.TournamentID),
		zap.String("user_id", sess.UserID))

	return &AccessResponse{
		Status:       200,
		TournamentID: sess.TournamentID,
		GameID:       sess.GameID,
		UserID:       sess.UserID,
		UserName:     sess.UserName,
		Token:        token,
	}, nil
}
