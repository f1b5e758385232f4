package notify

import (
	"github.com/jaehokim/nalssibot/internal/forecast"
	"github.com/jaehokim/nalssibot/internal/models"
)

// Fixed alert thresholds.
const (
	heatThreshold = 35.0  // °C
	coldThreshold = -10.0 // °C
	windThreshold = 15.0  // m/s
	rainThreshold = 20.0  // mm

	// rainSlotWindow is how many upcoming forecast slots the rain check
	// inspects.
	rainSlotWindow = 2

	// rainProbThreshold is the precipitation probability that triggers a
	// rain alert on its own.
	rainProbThreshold = 70.0
)

// EvaluateThresholds checks one observation against the fixed alert
// thresholds and collects every condition that fires, in evaluation order.
// The second return is false when nothing fired.
func EvaluateThresholds(sub models.Subscription, obs models.Observation) (models.AlertEvent, bool) {
	var conds []string

	if obs.Temperature.Valid {
		if obs.Temperature.Float64 >= heatThreshold {
			conds = append(conds, "🔥 폭염 경보: 기온이 35°C를 초과했습니다!")
		} else if obs.Temperature.Float64 <= coldThreshold {
			conds = append(conds, "🧊 한파 경보: 기온이 -10°C 이하입니다!")
		}
	}

	if obs.WindSpeed.Valid && obs.WindSpeed.Float64 >= windThreshold {
		conds = append(conds, "💨 강풍 경보: 풍속이 15m/s를 초과했습니다!")
	}

	if obs.Precip.Valid && obs.Precip.Float64 >= rainThreshold {
		conds = append(conds, "🌧️ 호우 경보: 시간당 강수량이 20mm를 초과했습니다!")
	}

	if len(conds) == 0 {
		return models.AlertEvent{}, false
	}
	return models.AlertEvent{Subscription: sub, Observation: obs, Conditions: conds}, true
}

// UpcomingRain returns the earliest of the next two forecast slots with
// precipitation probability at or above the threshold or a non-none
// precipitation type. The second return is false when neither qualifies.
func UpcomingRain(slots []forecast.Slot) (forecast.Slot, bool) {
	window := slots
	if len(window) > rainSlotWindow {
		window = window[:rainSlotWindow]
	}
	for _, slot := range window {
		if slot.PrecipProb >= rainProbThreshold || slot.PrecipType != forecast.PrecipTypeNone {
			return slot, true
		}
	}
	return forecast.Slot{}, false
}
