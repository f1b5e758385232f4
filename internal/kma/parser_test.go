package kma

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// makeRecord builds a 38-field sfctm2 data line where every field is the
// missing-value sentinel unless overridden.
func makeRecord(t *testing.T, overrides map[int]string) string {
	t.Helper()
	fields := make([]string, 38)
	for i := range fields {
		fields[i] = "-9"
	}
	fields[fieldTime] = "202608301100"
	fields[fieldStation] = "108"
	for idx, v := range overrides {
		fields[idx] = v
	}
	return strings.Join(fields, " ")
}

func TestParseObservation(t *testing.T) {
	loc := time.UTC

	raw := "#START7777\n" +
		"# TM, 관측시각\n" +
		"# STN, 지점번호\n" +
		makeRecord(t, map[int]string{
			fieldWindDir:    "270",
			fieldWindSpeed:  "3.2",
			fieldPressure:   "1008.5",
			fieldTemp:       "24.5",
			fieldHumidity:   "62",
			fieldPrecip:     "0.0",
			fieldVisibility: "2000",
			fieldGroundTemp: "26.1",
		}) + "\n" +
		"#7777END\n"

	obs, flags, err := ParseObservation(raw, loc)
	if err != nil {
		t.Fatalf("ParseObservation() error = %v", err)
	}
	if len(flags) != 0 {
		t.Errorf("flags = %v, want none", flags)
	}

	if obs.StationCode != 108 {
		t.Errorf("StationCode = %d, want 108", obs.StationCode)
	}
	if !obs.ObservedAt.Valid {
		t.Fatal("ObservedAt should be valid")
	}
	want := time.Date(2026, 8, 30, 11, 0, 0, 0, loc)
	if !obs.ObservedAt.Time.Equal(want) {
		t.Errorf("ObservedAt = %v, want %v", obs.ObservedAt.Time, want)
	}
	if !obs.Temperature.Valid || obs.Temperature.Float64 != 24.5 {
		t.Errorf("Temperature = %+v, want 24.5", obs.Temperature)
	}
	if !obs.Humidity.Valid || obs.Humidity.Float64 != 62 {
		t.Errorf("Humidity = %+v, want 62", obs.Humidity)
	}
	if !obs.WindSpeed.Valid || obs.WindSpeed.Float64 != 3.2 {
		t.Errorf("WindSpeed = %+v, want 3.2", obs.WindSpeed)
	}
	if !obs.Pressure.Valid || obs.Pressure.Float64 != 1008.5 {
		t.Errorf("Pressure = %+v, want 1008.5", obs.Pressure)
	}
	// 2000 x 10 m = 20 km.
	if !obs.Visibility.Valid || obs.Visibility.Float64 != 20 {
		t.Errorf("Visibility = %+v, want 20", obs.Visibility)
	}
	// Ground temperature wins as the feels-like value.
	if !obs.FeelsLike.Valid || obs.FeelsLike.Float64 != 26.1 {
		t.Errorf("FeelsLike = %+v, want 26.1", obs.FeelsLike)
	}
}

func TestParseObservationSentinels(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"minus nine", "-9"},
		{"minus ninety-nine", "-99"},
		{"minus nine point zero", "-9.0"},
		{"minus ninety-nine point zero", "-99.0"},
		{"non-numeric", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := makeRecord(t, map[int]string{
				fieldTemp:      tt.value,
				fieldHumidity:  tt.value,
				fieldWindSpeed: tt.value,
				fieldPrecip:    tt.value,
			})
			obs, _, err := ParseObservation(raw, time.UTC)
			if err != nil {
				t.Fatalf("ParseObservation() error = %v", err)
			}
			if obs.Temperature.Valid {
				t.Errorf("Temperature = %+v, want Null", obs.Temperature)
			}
			if obs.Humidity.Valid {
				t.Errorf("Humidity = %+v, want Null", obs.Humidity)
			}
			if obs.WindSpeed.Valid {
				t.Errorf("WindSpeed = %+v, want Null", obs.WindSpeed)
			}
			if obs.Precip.Valid {
				t.Errorf("Precip = %+v, want Null", obs.Precip)
			}
		})
	}
}

func TestParseObservationOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[int]string
		wantFlag  string
	}{
		{
			name:      "temperature above range",
			overrides: map[int]string{fieldTemp: "75.0"},
			wantFlag:  FlagTempOutOfRange,
		},
		{
			name:      "temperature below range",
			overrides: map[int]string{fieldTemp: "-60.0"},
			wantFlag:  FlagTempOutOfRange,
		},
		{
			name:      "humidity above range",
			overrides: map[int]string{fieldHumidity: "150"},
			wantFlag:  FlagHumidityOutOfRange,
		},
		{
			name:      "pressure below range",
			overrides: map[int]string{fieldPressure: "700"},
			wantFlag:  FlagPressureOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, flags, err := ParseObservation(makeRecord(t, tt.overrides), time.UTC)
			if err != nil {
				t.Fatalf("ParseObservation() error = %v", err)
			}
			if len(flags) != 1 || flags[0] != tt.wantFlag {
				t.Errorf("flags = %v, want [%s]", flags, tt.wantFlag)
			}
			switch tt.wantFlag {
			case FlagTempOutOfRange:
				if !obs.Temperature.Valid || obs.Temperature.Float64 != defaultTemp {
					t.Errorf("Temperature = %+v, want default %v", obs.Temperature, defaultTemp)
				}
			case FlagHumidityOutOfRange:
				if !obs.Humidity.Valid || obs.Humidity.Float64 != defaultHumidity {
					t.Errorf("Humidity = %+v, want default %v", obs.Humidity, defaultHumidity)
				}
			case FlagPressureOutOfRange:
				if !obs.Pressure.Valid || obs.Pressure.Float64 != defaultPressure {
					t.Errorf("Pressure = %+v, want default %v", obs.Pressure, defaultPressure)
				}
			}
		})
	}
}

func TestParseObservationErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty response", ""},
		{"only headers", "#START7777\n# TM 관측시각\n#7777END"},
		{"too few fields", "202608301100 108 270 3.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseObservation(tt.raw, time.UTC)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseObservation() error = %v, want *ParseError", err)
			}
		})
	}
}

func TestParseObservationVisibilityRounding(t *testing.T) {
	// 1234 x 10 m = 12.34 km exactly after rounding to two decimals.
	obs, _, err := ParseObservation(makeRecord(t, map[int]string{fieldVisibility: "1234"}), time.UTC)
	if err != nil {
		t.Fatalf("ParseObservation() error = %v", err)
	}
	if !obs.Visibility.Valid || obs.Visibility.Float64 != 12.34 {
		t.Errorf("Visibility = %+v, want 12.34", obs.Visibility)
	}
}

func TestFeelsLikeEstimate(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[int]string
		want      float64
	}{
		{
			// 24 + (70-50)*0.1 - 4*0.5 = 24.
			name:      "full inputs",
			overrides: map[int]string{fieldTemp: "24", fieldHumidity: "70", fieldWindSpeed: "4"},
			want:      24,
		},
		{
			// Missing humidity and wind take the 50 % / 2 m/s defaults:
			// 10 + 0 - 1 = 9.
			name:      "temperature only",
			overrides: map[int]string{fieldTemp: "10"},
			want:      9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, _, err := ParseObservation(makeRecord(t, tt.overrides), time.UTC)
			if err != nil {
				t.Fatalf("ParseObservation() error = %v", err)
			}
			if !obs.FeelsLike.Valid || obs.FeelsLike.Float64 != tt.want {
				t.Errorf("FeelsLike = %+v, want %v", obs.FeelsLike, tt.want)
			}
		})
	}
}

func TestFeelsLikeNullWithoutTemperature(t *testing.T) {
	obs, _, err := ParseObservation(makeRecord(t, nil), time.UTC)
	if err != nil {
		t.Fatalf("ParseObservation() error = %v", err)
	}
	if obs.FeelsLike.Valid {
		t.Errorf("FeelsLike = %+v, want Null", obs.FeelsLike)
	}
}
