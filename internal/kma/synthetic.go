package kma

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/jaehokim/nalssibot/internal/models"
)

// Value pools for synthetic observations. Bounded so downstream consumers
// always see plausible readings.
var (
	syntheticTemps      = []float64{15, 18, 22, 25, 28, 20, 12}
	syntheticDescs      = []string{"맑음", "구름조금", "흐림", "비", "눈", "안개"}
	syntheticHumidities = []float64{45, 55, 65, 75, 85}
	syntheticWinds      = []float64{2.5, 3.2, 4.1, 5.8, 1.2}
)

// Synthetic builds a fallback observation for when live data cannot be had.
// The bot always answers; the Source tag tells consumers it is not real.
func Synthetic(rng *rand.Rand, sido, area string, now time.Time) models.Observation {
	temp := syntheticTemps[rng.Intn(len(syntheticTemps))]
	return models.Observation{
		Sido:        sido,
		Area:        area,
		Temperature: sql.NullFloat64{Float64: temp, Valid: true},
		Humidity:    sql.NullFloat64{Float64: syntheticHumidities[rng.Intn(len(syntheticHumidities))], Valid: true},
		WindSpeed:   sql.NullFloat64{Float64: syntheticWinds[rng.Intn(len(syntheticWinds))], Valid: true},
		Pressure:    sql.NullFloat64{Float64: 1013, Valid: true},
		Precip:      sql.NullFloat64{Float64: 0, Valid: true},
		Visibility:  sql.NullFloat64{Float64: 10, Valid: true},
		FeelsLike:   sql.NullFloat64{Float64: temp + float64(rng.Intn(6)) - 3, Valid: true},
		Description: syntheticDescs[rng.Intn(len(syntheticDescs))],
		Source:      models.SourceSynthetic,
		FetchedAt:   now,
	}
}
