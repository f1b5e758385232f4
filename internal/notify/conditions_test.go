package notify

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/jaehokim/nalssibot/internal/forecast"
	"github.com/jaehokim/nalssibot/internal/models"
)

func f(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestEvaluateThresholds(t *testing.T) {
	sub := models.Subscription{ID: 1, Area: "강남구"}

	tests := []struct {
		name      string
		obs       models.Observation
		wantConds int
		wantMatch []string
	}{
		{
			name:      "calm weather",
			obs:       models.Observation{Temperature: f(22), WindSpeed: f(3), Precip: f(0)},
			wantConds: 0,
		},
		{
			name:      "heat only",
			obs:       models.Observation{Temperature: f(36.2), WindSpeed: f(5), Precip: f(0)},
			wantConds: 1,
			wantMatch: []string{"폭염"},
		},
		{
			name:      "heat at exact threshold",
			obs:       models.Observation{Temperature: f(35)},
			wantConds: 1,
			wantMatch: []string{"폭염"},
		},
		{
			name:      "cold",
			obs:       models.Observation{Temperature: f(-12)},
			wantConds: 1,
			wantMatch: []string{"한파"},
		},
		{
			name:      "wind and rain together",
			obs:       models.Observation{Temperature: f(20), WindSpeed: f(16), Precip: f(25)},
			wantConds: 2,
			wantMatch: []string{"강풍", "호우"},
		},
		{
			// Heat and cold are exclusive, so the worst case is three.
			name:      "heat wind rain",
			obs:       models.Observation{Temperature: f(36), WindSpeed: f(18), Precip: f(30)},
			wantConds: 3,
			wantMatch: []string{"폭염", "강풍", "호우"},
		},
		{
			name:      "missing readings fire nothing",
			obs:       models.Observation{},
			wantConds: 0,
		},
		{
			name:      "just under the heat threshold",
			obs:       models.Observation{Temperature: f(34.9)},
			wantConds: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := EvaluateThresholds(sub, tt.obs)
			if tt.wantConds == 0 {
				if ok {
					t.Fatalf("EvaluateThresholds() fired %v, want nothing", event.Conditions)
				}
				return
			}
			if !ok {
				t.Fatal("EvaluateThresholds() fired nothing")
			}
			if len(event.Conditions) != tt.wantConds {
				t.Errorf("conditions = %v, want %d entries", event.Conditions, tt.wantConds)
			}
			for i, substr := range tt.wantMatch {
				if i >= len(event.Conditions) {
					break
				}
				if !strings.Contains(event.Conditions[i], substr) {
					t.Errorf("condition %d = %q, want it to mention %q", i, event.Conditions[i], substr)
				}
			}
			if event.Subscription.ID != sub.ID {
				t.Errorf("event subscription = %d, want %d", event.Subscription.ID, sub.ID)
			}
		})
	}
}

func TestUpcomingRain(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 8, 30, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		slots    []forecast.Slot
		wantHit  bool
		wantHour int
	}{
		{
			name:    "no slots",
			wantHit: false,
		},
		{
			name: "dry window",
			slots: []forecast.Slot{
				{Time: at(12), PrecipProb: 30, PrecipType: forecast.PrecipTypeNone},
				{Time: at(15), PrecipProb: 60, PrecipType: forecast.PrecipTypeNone},
			},
			wantHit: false,
		},
		{
			name: "probability trigger in first slot",
			slots: []forecast.Slot{
				{Time: at(12), PrecipProb: 70, PrecipType: forecast.PrecipTypeNone},
				{Time: at(15), PrecipProb: 0, PrecipType: forecast.PrecipTypeNone},
			},
			wantHit:  true,
			wantHour: 12,
		},
		{
			name: "type trigger in second slot",
			slots: []forecast.Slot{
				{Time: at(12), PrecipProb: 10, PrecipType: forecast.PrecipTypeNone},
				{Time: at(15), PrecipProb: 40, PrecipType: "비"},
			},
			wantHit:  true,
			wantHour: 15,
		},
		{
			// The third slot is outside the window even when it rains.
			name: "rain beyond the window",
			slots: []forecast.Slot{
				{Time: at(12), PrecipProb: 0, PrecipType: forecast.PrecipTypeNone},
				{Time: at(15), PrecipProb: 0, PrecipType: forecast.PrecipTypeNone},
				{Time: at(18), PrecipProb: 90, PrecipType: "비"},
			},
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := UpcomingRain(tt.slots)
			if ok != tt.wantHit {
				t.Fatalf("UpcomingRain() hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && slot.Time.Hour() != tt.wantHour {
				t.Errorf("slot hour = %d, want %d", slot.Time.Hour(), tt.wantHour)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name string
		sub  models.Subscription
		want Target
	}{
		{
			name: "DM sentinel",
			sub:  models.Subscription{UserID: "u1", ChannelID: models.DirectSentinel},
			want: DirectTarget("u1"),
		},
		{
			name: "channel snowflake",
			sub:  models.Subscription{UserID: "u1", ChannelID: "123456789"},
			want: ChannelTarget("123456789"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTarget(tt.sub); got != tt.want {
				t.Errorf("ResolveTarget() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
