package score

import "time"

// DefaultLeaderboardLimit is the ranked-view size served to viewers and
// pushed by the broadcast hub.
const DefaultLeaderboardLimit = 10

// ScoreRecord is one completed play reported by the game vendor. Records
// are append-only: there is no update or delete path.
type ScoreRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	TournamentID string    `json:"tournament_id"`
	GameID       string    `json:"game_id"`
	Score        int       `gorm:"not null" json:"score"`
	Time         int       `gorm:"not null" json:"time"`
	IsValid      bool      `gorm:"not null" json:"is_valid"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}

// RankedEntry is one row of the derived leaderboard: the best valid score
// per player together with the play that achieved it. Never persisted.
type RankedEntry struct {
	UserID    string    `json:"user_id"`
	BestScore int       `json:"best_score"`
	Time      int       `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionRequest is the vendor score payload. Score, Time and IsValid
// are pointers so that missing or mistyped fields fail validation instead
// of defaulting to zero values.
type SubmissionRequest struct {
	TournamentID string `json:"tournament_id"`
	GameID       string `json:"game_id"`
	UserID       string `json:"user_id"`
	Score        *int   `json:"score"`
	Time         *int   `json:"time"`
	IsValid      *bool  `json:"is_valid"`
}
