package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jaehokim/nalssibot/internal/models"
)

// PutCachedObservation persists one observation as the durable cache entry
// for its location, replacing any previous entry.
func (s *Store) PutCachedObservation(obs models.Observation, expiresAt time.Time) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshal observation: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO weather_cache (sido, area, observation, cached_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sido, area) DO UPDATE SET
			observation = excluded.observation,
			cached_at = excluded.cached_at,
			expires_at = excluded.expires_at
	`, obs.Sido, obs.Area, string(payload), time.Now().In(s.loc), expiresAt)
	return err
}

// GetCachedObservation returns the unexpired durable entry for a location,
// along with its expiry, or nil when none is live.
func (s *Store) GetCachedObservation(sido, area string, now time.Time) (*models.Observation, time.Time, error) {
	var payload string
	var expiresAt time.Time
	err := s.db.QueryRow(`
		SELECT observation, expires_at
		FROM weather_cache
		WHERE sido = ? AND area = ? AND expires_at > ?
	`, sido, area, now).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var obs models.Observation
	if err := json.Unmarshal([]byte(payload), &obs); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal observation: %w", err)
	}
	return &obs, expiresAt, nil
}

// DeleteExpiredObservations removes durable entries past their expiry.
func (s *Store) DeleteExpiredObservations(now time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM weather_cache WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
