package models

import (
	"database/sql"
	"time"
)

// Source records where an observation came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceCached    Source = "cached"
	SourceSynthetic Source = "synthetic"
)

// Observation is one normalized surface observation for a (sido, area) pair.
// Numeric fields are Null when the upstream reported a missing-value sentinel.
type Observation struct {
	Sido        string
	Area        string
	StationCode int
	ObservedAt  sql.NullTime
	Temperature sql.NullFloat64 // °C
	Humidity    sql.NullFloat64 // %
	WindSpeed   sql.NullFloat64 // m/s
	WindDir     sql.NullFloat64 // degrees
	Pressure    sql.NullFloat64 // hPa
	Precip      sql.NullFloat64 // mm
	Visibility  sql.NullFloat64 // km
	FeelsLike   sql.NullFloat64 // °C
	GroundTemp  sql.NullFloat64 // °C
	Description string
	Source      Source
	FetchedAt   time.Time
}

// AlertKind identifies one of the three notification schedules.
type AlertKind string

const (
	KindDaily        AlertKind = "daily"
	KindWeatherAlert AlertKind = "weather_alert"
	KindRainAlert    AlertKind = "rain_alert"
)

// DirectSentinel is the stored channel_id value meaning "DM the owner".
const DirectSentinel = "DM"

// Subscription is one notification setting, owned by the store. ChannelID
// carries the legacy row encoding: the literal "DM" means deliver to the
// owner directly; anything else is a channel snowflake.
type Subscription struct {
	ID        int64
	UserID    string
	GuildID   string
	ChannelID string
	Sido      string
	Area      string
	Kind      AlertKind
	Time      sql.NullString // HH:mm, daily only
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AlertEvent is one triggered alert for one subscription. Conditions holds
// the description of every threshold that fired, in evaluation order.
type AlertEvent struct {
	Subscription Subscription
	Observation  Observation
	Conditions   []string
}

// QueryRecord is one row of the append-only weather query log.
type QueryRecord struct {
	UserID      string
	UserName    string
	GuildID     string
	Sido        string
	Area        string
	Temperature sql.NullFloat64
	Humidity    sql.NullFloat64
	WindSpeed   sql.NullFloat64
	Precip      sql.NullFloat64
}

// UserStats is the per-(user, guild) aggregate the command layer reads.
type UserStats struct {
	UserID        string
	GuildID       string
	TotalQueries  int64
	FavoriteSido  sql.NullString
	FavoriteArea  sql.NullString
	LastQueryTime sql.NullTime
	FirstQuery    time.Time
}
