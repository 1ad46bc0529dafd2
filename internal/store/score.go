package store

import (
	"context"
	"fmt"

	"github.com/mfranke/numguess/internal/model"
)

// scoreboardQuery selects, for every user with at least one score, the
// row with the fewest tries, breaking ties by earliest created_at.
const scoreboardQuery = `
SELECT
    u.id AS user_id,
    u.username,
    u.first_name,
    u.last_name,
    u.email,
    s.tries,
    s.created_at
FROM users u
JOIN scores s ON s.user_id = u.id
WHERE s.tries = (
    SELECT MIN(s2.tries)
    FROM scores s2
    WHERE s2.user_id = u.id
)
AND s.created_at = (
    SELECT MIN(s3.created_at)
    FROM scores s3
    WHERE s3.user_id = u.id AND s3.tries = s.tries
)
ORDER BY s.tries ASC, s.created_at ASC`

// RecordScore inserts one immutable score row. A zero userID or a
// negative tries count is rejected with ErrInvalidScore.
func (s *Store) RecordScore(ctx context.Context, userID uint, tries int) error {
	if userID == 0 {
		return fmt.Errorf("%w: user id is required", model.ErrInvalidScore)
	}
	if tries < 0 {
		return fmt.Errorf("%w: tries must be non-negative, got %d", model.ErrInvalidScore, tries)
	}

	score := &model.Score{
		UserID:    userID,
		Tries:     tries,
		CreatedAt: s.clock.Now(),
	}
	return s.db.WithContext(ctx).Omit("User").Create(score).Error
}

// Scoreboard returns each user's personal-best round, ordered ascending
// by (tries, created_at). A limit <= 0 means no limit.
func (s *Store) Scoreboard(ctx context.Context, limit int) ([]model.ScoreboardEntry, error) {
	query := scoreboardQuery
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var entries []model.ScoreboardEntry
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
