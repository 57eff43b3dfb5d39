package session

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	GameID       string `json:"game_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token the frontend can use to resume a
// session without re-running the NFT check. Expiry matches the session.
var GenerateSessionToken = func(session *GameSession) (string, error) {
	claims := SessionClaims{
		TournamentID: session.TournamentID,
		UserID:       session.UserID,
		GameID:       session.GameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
