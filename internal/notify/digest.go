package notify

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jaehokim/nalssibot/internal/forecast"
	"github.com/jaehokim/nalssibot/internal/models"
	"github.com/jaehokim/nalssibot/internal/suitability"
)

// digestSlots is how many forecast slots the daily digest lists.
const digestSlots = 8

// DigestMessage renders the daily digest: current readings, today's
// 3-hourly outlook, activity verdicts and an outfit recommendation.
func DigestMessage(sub models.Subscription, obs models.Observation, slots []forecast.Slot) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "🌡️ 현재 날씨\n")
	fmt.Fprintf(&b, "온도: %.1f°C\n", orDefault(obs.Temperature, 20))
	fmt.Fprintf(&b, "습도: %.0f%%\n", orDefault(obs.Humidity, 50))
	fmt.Fprintf(&b, "바람: %.1fm/s\n", orDefault(obs.WindSpeed, 2.0))
	fmt.Fprintf(&b, "강수량: %.1fmm\n", orDefault(obs.Precip, 0))

	if len(slots) > 0 {
		window := slots
		if len(window) > digestSlots {
			window = window[:digestSlots]
		}
		b.WriteString("\n📅 오늘 예보\n")
		for _, slot := range window {
			fmt.Fprintf(&b, "%02d월 %02d일 %02d시: %.0f°C, %s\n",
				slot.Time.Month(), slot.Time.Day(), slot.Time.Hour(), slot.Temperature, slot.Sky)
		}
	}

	in := suitability.FromObservation(obs)
	running := suitability.Running(in)
	camping := suitability.Camping(in)
	b.WriteString("\n🏃 활동 적합도\n")
	fmt.Fprintf(&b, "런닝: %s (%d점)\n", running.Grade.Label(), running.Score)
	fmt.Fprintf(&b, "캠핑: %s (%d점)\n", camping.Grade.Label(), camping.Score)

	b.WriteString("\n👕 외출 추천\n")
	b.WriteString(OutfitRecommendation(obs, slots))

	return Message{
		Title: fmt.Sprintf("🌅 %s 오늘의 날씨", sub.Area),
		Body:  b.String(),
	}
}

// OutfitRecommendation builds the temperature-banded clothing advice plus
// umbrella, wind and humidity callouts.
func OutfitRecommendation(obs models.Observation, slots []forecast.Slot) string {
	var recs []string

	switch temp := orDefault(obs.Temperature, 20); {
	case temp >= 28:
		recs = append(recs, "🌡️ 반팔, 반바지 추천")
	case temp >= 20:
		recs = append(recs, "👕 긴팔, 얇은 옷 추천")
	case temp >= 10:
		recs = append(recs, "🧥 자켓이나 가디건 추천")
	default:
		recs = append(recs, "🧥 두꺼운 옷, 코트 추천")
	}

	if orDefault(obs.Precip, 0) > 0 || rainLikely(slots) {
		recs = append(recs, "☂️ 우산 필수")
	}
	if orDefault(obs.WindSpeed, 0) > 10 {
		recs = append(recs, "💨 바람이 강하니 주의")
	}
	if orDefault(obs.Humidity, 50) > 80 {
		recs = append(recs, "💧 습도가 높으니 통풍 좋은 옷 추천")
	}

	if len(recs) == 0 {
		return "😊 외출하기 좋은 날씨입니다!"
	}
	return strings.Join(recs, "\n")
}

func rainLikely(slots []forecast.Slot) bool {
	for _, slot := range slots {
		if slot.PrecipProb > 50 {
			return true
		}
	}
	return false
}

// AlertMessage renders a threshold alert event.
func AlertMessage(event models.AlertEvent) Message {
	obs := event.Observation
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**에 날씨 경보가 발생했습니다!\n\n", event.Subscription.Area)
	b.WriteString("🚨 경보 내용\n")
	b.WriteString(strings.Join(event.Conditions, "\n"))
	b.WriteString("\n\n📊 현재 상황\n")
	fmt.Fprintf(&b, "온도: %.1f°C\n", orDefault(obs.Temperature, 20))
	fmt.Fprintf(&b, "풍속: %.1fm/s\n", orDefault(obs.WindSpeed, 0))
	fmt.Fprintf(&b, "강수량: %.1fmm\n", orDefault(obs.Precip, 0))
	fmt.Fprintf(&b, "습도: %.0f%%", orDefault(obs.Humidity, 50))

	return Message{Title: "⚠️ 날씨 경보", Body: b.String()}
}

// RainMessage renders a precipitation alert for the triggering slot.
func RainMessage(sub models.Subscription, slot forecast.Slot) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**에 곧 비가 올 예정입니다!\n\n", sub.Area)
	b.WriteString("☔ 예보 정보\n")
	fmt.Fprintf(&b, "시간: %02d월 %02d일 %02d시\n", slot.Time.Month(), slot.Time.Day(), slot.Time.Hour())
	fmt.Fprintf(&b, "강수확률: %.0f%%\n", slot.PrecipProb)
	fmt.Fprintf(&b, "강수형태: %s\n", slot.PrecipType)
	fmt.Fprintf(&b, "예상온도: %.0f°C\n\n", slot.Temperature)
	b.WriteString("☂️ 준비사항\n우산을 챙기시고 외출에 주의하세요!")

	return Message{Title: "🌧️ 비 예보 알림", Body: b.String()}
}

func orDefault(v sql.NullFloat64, def float64) float64 {
	if v.Valid {
		return v.Float64
	}
	return def
}
