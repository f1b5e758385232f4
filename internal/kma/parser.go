package kma

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jaehokim/nalssibot/internal/models"
)

// The surface observation endpoint (kma_sfctm2) returns newline-delimited
// text: comment/header lines followed by one whitespace-separated record.
// Positional indices into that record:
const (
	fieldTime       = 0  // TM, YYYYMMDDHHMM
	fieldStation    = 1  // STN
	fieldWindDir    = 2  // WD
	fieldWindSpeed  = 3  // WS, m/s
	fieldPressure   = 7  // PA, hPa
	fieldTemp       = 11 // TA, °C
	fieldHumidity   = 13 // HM, %
	fieldPrecip     = 15 // RN, mm
	fieldVisibility = 32 // VS, 10 m units
	fieldGroundTemp = 37 // TS, °C
)

// minFields is the number of positional fields a record must carry to be
// usable; visibility and ground temperature beyond it are optional.
const minFields = 16

// Replacement defaults for readings outside the physically plausible range.
const (
	defaultTemp     = 20.0
	defaultHumidity = 50.0
	defaultPressure = 1013.0
)

// Validation flags reported when an out-of-range reading was replaced.
const (
	FlagTempOutOfRange     = "temp_out_of_range"
	FlagHumidityOutOfRange = "humidity_out_of_range"
	FlagPressureOutOfRange = "pressure_out_of_range"
)

// ParseError reports that a response carried no usable observation record.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "kma: parse observation: " + e.Reason
}

// ParseObservation extracts one observation from a raw sfctm2 response.
// Missing-value sentinels (-9, -99, in any numeric rendering) become Null
// fields. Readings outside the valid range are replaced with a default and
// the replacement is reported in the returned flags. The result carries no
// location or source tag; the caller fills those in.
func ParseObservation(raw string, loc *time.Location) (models.Observation, []string, error) {
	dataLine := ""
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Header and comment lines name the columns or carry markers.
		if strings.Contains(line, "#") || strings.Contains(line, "STN") || strings.Contains(line, "TM") {
			continue
		}
		if line[0] >= '0' && line[0] <= '9' {
			dataLine = line
			break
		}
	}
	if dataLine == "" {
		return models.Observation{}, nil, &ParseError{Reason: "no data line in response"}
	}

	fields := strings.Fields(dataLine)
	if len(fields) < minFields {
		return models.Observation{}, nil, &ParseError{Reason: fmt.Sprintf("data line has %d fields, need %d", len(fields), minFields)}
	}

	obs := models.Observation{
		Temperature: parseField(fields, fieldTemp),
		Humidity:    parseField(fields, fieldHumidity),
		WindSpeed:   parseField(fields, fieldWindSpeed),
		WindDir:     parseField(fields, fieldWindDir),
		Pressure:    parseField(fields, fieldPressure),
		Precip:      parseField(fields, fieldPrecip),
		GroundTemp:  parseField(fields, fieldGroundTemp),
		Description: "실측값",
	}

	if code, err := strconv.Atoi(fields[fieldStation]); err == nil {
		obs.StationCode = code
	}

	if t, err := time.ParseInLocation("200601021504", fields[fieldTime], loc); err == nil && len(fields[fieldTime]) == 12 {
		obs.ObservedAt = sql.NullTime{Time: t, Valid: true}
	}

	// VS is reported in 10 m units.
	if vs := parseField(fields, fieldVisibility); vs.Valid {
		km := vs.Float64 * 10 / 1000
		obs.Visibility = sql.NullFloat64{Float64: math.Round(km*100) / 100, Valid: true}
	}

	var flags []string
	if obs.Temperature.Valid && (obs.Temperature.Float64 < -50 || obs.Temperature.Float64 > 60) {
		obs.Temperature.Float64 = defaultTemp
		flags = append(flags, FlagTempOutOfRange)
	}
	if obs.Humidity.Valid && (obs.Humidity.Float64 < 0 || obs.Humidity.Float64 > 100) {
		obs.Humidity.Float64 = defaultHumidity
		flags = append(flags, FlagHumidityOutOfRange)
	}
	if obs.Pressure.Valid && (obs.Pressure.Float64 < 800 || obs.Pressure.Float64 > 1100) {
		obs.Pressure.Float64 = defaultPressure
		flags = append(flags, FlagPressureOutOfRange)
	}

	obs.FeelsLike = feelsLike(obs)

	return obs, flags, nil
}

// parseField reads one positional field, mapping missing-value sentinels and
// non-numeric content to Null. Indices past the end of the record are Null.
func parseField(fields []string, idx int) sql.NullFloat64 {
	if idx >= len(fields) {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	if v == -9 || v == -99 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// feelsLike prefers the ground temperature reading; without one it estimates
// from temperature, humidity and wind, substituting the usual defaults for
// missing inputs. Null when there is no temperature at all.
func feelsLike(obs models.Observation) sql.NullFloat64 {
	if obs.GroundTemp.Valid {
		return obs.GroundTemp
	}
	if !obs.Temperature.Valid {
		return sql.NullFloat64{}
	}
	humidity := defaultHumidity
	if obs.Humidity.Valid {
		humidity = obs.Humidity.Float64
	}
	wind := 2.0
	if obs.WindSpeed.Valid {
		wind = obs.WindSpeed.Float64
	}
	v := obs.Temperature.Float64 + (humidity-50)*0.1 - wind*0.5
	return sql.NullFloat64{Float64: math.Round(v), Valid: true}
}
