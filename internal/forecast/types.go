package forecast

import "time"

// Slot is one 3-hourly short-term forecast entry.
type Slot struct {
	Time        time.Time
	Temperature float64 // °C
	Humidity    float64 // %
	WindSpeed   float64 // m/s
	Sky         string  // 맑음 / 구름많음 / 흐림
	PrecipType  string  // 없음 / 비 / 비눈 / 눈 / 소나기
	PrecipProb  float64 // %
	Precip      string  // PCP as reported, e.g. "강수없음", "1.0mm"
}

// PrecipTypeNone is the PTY value meaning no precipitation expected.
const PrecipTypeNone = "없음"

// skyCondition maps the SKY category code to its display name.
func skyCondition(code string) string {
	switch code {
	case "1":
		return "맑음"
	case "3":
		return "구름많음"
	case "4":
		return "흐림"
	default:
		return "알 수 없음"
	}
}

// precipType maps the PTY category code to its display name.
func precipType(code string) string {
	switch code {
	case "0":
		return PrecipTypeNone
	case "1":
		return "비"
	case "2":
		return "비/눈"
	case "3":
		return "눈"
	case "4":
		return "소나기"
	default:
		return "알 수 없음"
	}
}
