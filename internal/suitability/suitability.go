// Package suitability scores observations for outdoor activities. The
// evaluators are pure: callers substitute defaults for any missing readings
// before scoring, so no Null values reach this package.
package suitability

import (
	"strings"

	"github.com/jaehokim/nalssibot/internal/models"
)

// Sky is the categorical weather state an observation description maps to.
type Sky int

const (
	SkyUnknown Sky = iota
	SkyClear       // 맑음, 구름조금
	SkyCloudy      // 흐림, 구름많음
	SkyPrecip      // 비, 눈
)

// SkyFromDescription categorizes a KMA weather description. Descriptions
// that name no sky state (live records report "실측값") stay unknown and
// contribute no points.
func SkyFromDescription(desc string) Sky {
	switch {
	case strings.Contains(desc, "맑") || strings.Contains(desc, "구름조금"):
		return SkyClear
	case strings.Contains(desc, "흐림") || strings.Contains(desc, "구름많음"):
		return SkyCloudy
	case strings.Contains(desc, "비") || strings.Contains(desc, "눈"):
		return SkyPrecip
	default:
		return SkyUnknown
	}
}

// Grade buckets a score.
type Grade string

const (
	GradeVeryGood Grade = "verygood"
	GradeGood     Grade = "good"
	GradeBad      Grade = "bad"
	GradeVeryBad  Grade = "verybad"
)

// Label returns the user-facing grade name.
func (g Grade) Label() string {
	switch g {
	case GradeVeryGood:
		return "매우 좋음"
	case GradeGood:
		return "좋음"
	case GradeBad:
		return "나쁨"
	default:
		return "매우 나쁨"
	}
}

// Input is a fully substituted set of readings.
type Input struct {
	Temperature float64 // °C
	Humidity    float64 // %
	WindSpeed   float64 // m/s
	Visibility  float64 // km
	Sky         Sky
}

// FromObservation builds an Input, substituting the standard defaults for
// missing readings.
func FromObservation(obs models.Observation) Input {
	in := Input{
		Temperature: 20,
		Humidity:    50,
		WindSpeed:   2.0,
		Visibility:  10,
		Sky:         SkyFromDescription(obs.Description),
	}
	if obs.Temperature.Valid {
		in.Temperature = obs.Temperature.Float64
	}
	if obs.Humidity.Valid {
		in.Humidity = obs.Humidity.Float64
	}
	if obs.WindSpeed.Valid {
		in.WindSpeed = obs.WindSpeed.Float64
	}
	if obs.Visibility.Valid {
		in.Visibility = obs.Visibility.Float64
	}
	return in
}

// Verdict is an activity-fitness result: an additive score out of 100, its
// grade, and up to three contributing category labels in evaluation order.
type Verdict struct {
	Grade   Grade
	Score   int
	Reasons []string
	Advice  string
}

// Running scores an observation for running. Weights: temperature 40,
// sky 30, wind 20, humidity 10.
func Running(in Input) Verdict {
	score := 0
	var reasons []string

	switch {
	case in.Temperature >= 15 && in.Temperature <= 25:
		score += 40
		reasons = append(reasons, "적정 온도")
	case in.Temperature >= 10 && in.Temperature < 15:
		score += 25
		reasons = append(reasons, "조금 서늘함")
	case in.Temperature > 25 && in.Temperature <= 30:
		score += 20
		reasons = append(reasons, "조금 더움")
	case in.Temperature < 10:
		reasons = append(reasons, "너무 추움")
	default:
		reasons = append(reasons, "너무 더움")
	}

	switch in.Sky {
	case SkyClear:
		score += 30
		reasons = append(reasons, "좋은 날씨")
	case SkyCloudy:
		score += 20
		reasons = append(reasons, "흐린 날씨")
	case SkyPrecip:
		reasons = append(reasons, "강수")
	}

	switch {
	case in.WindSpeed <= 3:
		score += 20
		reasons = append(reasons, "바람 적음")
	case in.WindSpeed <= 6:
		score += 10
		reasons = append(reasons, "바람 보통")
	default:
		reasons = append(reasons, "바람 강함")
	}

	switch {
	case in.Humidity <= 60:
		score += 10
		reasons = append(reasons, "적정 습도")
	case in.Humidity <= 80:
		score += 5
		reasons = append(reasons, "습도 보통")
	default:
		reasons = append(reasons, "습도 높음")
	}

	return verdict(score, reasons, runningAdvice)
}

// Camping scores an observation for camping. Weights: temperature 35,
// sky 40, wind 15, visibility 10.
func Camping(in Input) Verdict {
	score := 0
	var reasons []string

	switch {
	case in.Temperature >= 10 && in.Temperature <= 25:
		score += 35
		reasons = append(reasons, "적정 온도")
	case in.Temperature >= 5 && in.Temperature < 10:
		score += 20
		reasons = append(reasons, "조금 추움")
	case in.Temperature > 25 && in.Temperature <= 30:
		score += 25
		reasons = append(reasons, "조금 더움")
	case in.Temperature < 5:
		reasons = append(reasons, "너무 추움")
	default:
		reasons = append(reasons, "너무 더움")
	}

	switch in.Sky {
	case SkyClear:
		score += 40
		reasons = append(reasons, "맑은 날씨")
	case SkyCloudy:
		score += 25
		reasons = append(reasons, "흐린 날씨")
	case SkyPrecip:
		reasons = append(reasons, "강수로 위험")
	}

	switch {
	case in.WindSpeed <= 2:
		score += 15
		reasons = append(reasons, "바람 약함")
	case in.WindSpeed <= 5:
		score += 10
		reasons = append(reasons, "바람 보통")
	case in.WindSpeed <= 8:
		score += 5
		reasons = append(reasons, "바람 강함")
	default:
		reasons = append(reasons, "바람 매우 강함")
	}

	switch {
	case in.Visibility >= 8:
		score += 10
		reasons = append(reasons, "시야 양호")
	case in.Visibility >= 5:
		score += 5
		reasons = append(reasons, "시야 보통")
	default:
		reasons = append(reasons, "시야 불량")
	}

	return verdict(score, reasons, campingAdvice)
}

func verdict(score int, reasons []string, advice map[Grade]string) Verdict {
	grade := GradeVeryBad
	switch {
	case score >= 80:
		grade = GradeVeryGood
	case score >= 60:
		grade = GradeGood
	case score >= 40:
		grade = GradeBad
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return Verdict{Grade: grade, Score: score, Reasons: reasons, Advice: advice[grade]}
}

var runningAdvice = map[Grade]string{
	GradeVeryGood: "런닝하기 완벽한 날씨입니다!",
	GradeGood:     "런닝하기 좋은 날씨입니다.",
	GradeBad:      "런닝 시 주의가 필요합니다.",
	GradeVeryBad:  "런닝을 권장하지 않습니다.",
}

var campingAdvice = map[Grade]string{
	GradeVeryGood: "캠핑하기 완벽한 날씨입니다!",
	GradeGood:     "캠핑하기 좋은 날씨입니다.",
	GradeBad:      "캠핑 시 주의가 필요합니다.",
	GradeVeryBad:  "캠핑을 권장하지 않습니다.",
}
