package store

import (
	"time"

	"github.com/jaehokim/nalssibot/internal/models"
)

// AddSubscription creates a subscription or reactivates/updates the existing
// row for the same (user, guild, sido, area, kind) key. The unique key makes
// "at most one active subscription per key" a schema property.
func (s *Store) AddSubscription(sub models.Subscription) error {
	_, err := s.db.Exec(`
		INSERT INTO subscriptions (user_id, guild_id, channel_id, sido, area, kind, notify_time, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?)
		ON CONFLICT(user_id, guild_id, sido, area, kind) DO UPDATE SET
			channel_id = excluded.channel_id,
			notify_time = excluded.notify_time,
			is_active = TRUE,
			updated_at = excluded.updated_at
	`, sub.UserID, sub.GuildID, sub.ChannelID, sub.Sido, sub.Area, string(sub.Kind), sub.Time, time.Now().In(s.loc))
	return err
}

// DeactivateSubscription marks a subscription inactive. Inactive rows are
// never returned by ListActive and so never evaluated or delivered to.
func (s *Store) DeactivateSubscription(userID, guildID, sido, area string, kind models.AlertKind) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE subscriptions
		SET is_active = FALSE, updated_at = ?
		WHERE user_id = ? AND guild_id = ? AND sido = ? AND area = ? AND kind = ?
	`, time.Now().In(s.loc), userID, guildID, sido, area, string(kind))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListActive returns every active subscription of one kind.
func (s *Store) ListActive(kind models.AlertKind) ([]models.Subscription, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, guild_id, channel_id, sido, area, kind, notify_time, is_active, created_at, updated_at
		FROM subscriptions
		WHERE is_active = TRUE AND kind = ?
		ORDER BY id ASC
	`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var kindStr string
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.GuildID, &sub.ChannelID, &sub.Sido, &sub.Area, &kindStr, &sub.Time, &sub.Active, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		sub.Kind = models.AlertKind(kindStr)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// CountActive reports active subscriptions for one guild, for the stats
// surface the command layer exposes.
func (s *Store) CountActive(guildID string) (int64, error) {
	var n int64
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM subscriptions WHERE guild_id = ? AND is_active = TRUE
	`, guildID).Scan(&n)
	return n, err
}
