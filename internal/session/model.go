package session

import "time"

// GameSession authorizes one player to play one game. Sessions are
// immutable once created and expire by time; they are never deleted.
type GameSession struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	TournamentID string    `gorm:"uniqueIndex;not null" json:"tournament_id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	GameID       string    `gorm:"not null" json:"game_id"`
	UserName     string    `json:"user_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}
