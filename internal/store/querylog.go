package store

import (
	"database/sql"
	"time"

	"github.com/jaehokim/nalssibot/internal/models"
)

// RecordQuery appends one row to the weather query log.
func (s *Store) RecordQuery(rec models.QueryRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO weather_queries (user_id, user_name, guild_id, sido, area, temperature, humidity, wind_speed, precipitation, query_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.UserID, rec.UserName, rec.GuildID, rec.Sido, rec.Area,
		rec.Temperature, rec.Humidity, rec.WindSpeed, rec.Precip, time.Now().In(s.loc))
	return err
}

// TouchUserStats bumps the per-(user, guild) aggregate for one query,
// recording the most recent location as the favorite.
func (s *Store) TouchUserStats(userID, guildID, sido, area string) error {
	now := time.Now().In(s.loc)
	_, err := s.db.Exec(`
		INSERT INTO user_statistics (user_id, guild_id, total_queries, favorite_sido, favorite_area, last_query_time, updated_at)
		VALUES (?, ?, 1, ?, ?, ?, ?)
		ON CONFLICT(user_id, guild_id) DO UPDATE SET
			total_queries = total_queries + 1,
			favorite_sido = excluded.favorite_sido,
			favorite_area = excluded.favorite_area,
			last_query_time = excluded.last_query_time,
			updated_at = excluded.updated_at
	`, userID, guildID, sido, area, now, now)
	return err
}

// GetUserStats returns the aggregate for one (user, guild), or nil when the
// user has never queried.
func (s *Store) GetUserStats(userID, guildID string) (*models.UserStats, error) {
	row := s.db.QueryRow(`
		SELECT user_id, guild_id, total_queries, favorite_sido, favorite_area, last_query_time, first_query_time
		FROM user_statistics
		WHERE user_id = ? AND guild_id = ?
	`, userID, guildID)

	var stats models.UserStats
	err := row.Scan(&stats.UserID, &stats.GuildID, &stats.TotalQueries,
		&stats.FavoriteSido, &stats.FavoriteArea, &stats.LastQueryTime, &stats.FirstQuery)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountQueries reports log rows for one guild since a cutoff.
func (s *Store) CountQueries(guildID string, since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM weather_queries WHERE guild_id = ? AND query_time >= ?
	`, guildID, since).Scan(&n)
	return n, err
}
