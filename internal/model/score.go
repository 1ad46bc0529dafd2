package model

import "time"

// Score records one completed round: how many tries a user needed.
// Rows are append-only; they are never updated and only removed by
// cascading user deletion.
type Score struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Tries     int  `gorm:"not null"`
	CreatedAt time.Time
}

// TableName pins the table name independent of gorm's pluralisation rules
func (Score) TableName() string { return "scores" }

// ScoreboardEntry is one row of the best-score leaderboard: a user's
// personal-best round (fewest tries, earliest on a tie).
type ScoreboardEntry struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Tries     int       `json:"tries"`
	CreatedAt time.Time `json:"created_at"`
}
