package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestBaseIssue(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantDate string
		wantTime string
	}{
		{
			name:     "mid afternoon uses 1400",
			now:      time.Date(2026, 8, 30, 15, 12, 0, 0, time.UTC),
			wantDate: "20260830",
			wantTime: "1400",
		},
		{
			name:     "exactly on an issue hour",
			now:      time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
			wantDate: "20260830",
			wantTime: "1100",
		},
		{
			name:     "late evening uses 2300",
			now:      time.Date(2026, 8, 30, 23, 45, 0, 0, time.UTC),
			wantDate: "20260830",
			wantTime: "2300",
		},
		{
			name:     "before first issue falls back to yesterday 2300",
			now:      time.Date(2026, 8, 30, 1, 30, 0, 0, time.UTC),
			wantDate: "20260829",
			wantTime: "2300",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("key", time.UTC)
			c.SetClock(clockwork.NewFakeClockAt(tt.now))
			date, tm := c.baseIssue()
			if date != tt.wantDate || tm != tt.wantTime {
				t.Errorf("baseIssue() = %s %s, want %s %s", date, tm, tt.wantDate, tt.wantTime)
			}
		})
	}
}

func TestParseSlots(t *testing.T) {
	c := NewClient("key", time.UTC)

	items := []apiItem{
		{FcstDate: "20260830", FcstTime: "1500", Category: "TMP", FcstValue: "27"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "REH", FcstValue: "65"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "WSD", FcstValue: "3.4"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "SKY", FcstValue: "1"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "PTY", FcstValue: "0"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "POP", FcstValue: "20"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "PCP", FcstValue: "강수없음"},
		// Earlier slot listed later: order comes from the times, not the
		// item stream.
		{FcstDate: "20260830", FcstTime: "1200", Category: "TMP", FcstValue: "25"},
		{FcstDate: "20260830", FcstTime: "1200", Category: "SKY", FcstValue: "4"},
		{FcstDate: "20260830", FcstTime: "1200", Category: "PTY", FcstValue: "1"},
		{FcstDate: "20260830", FcstTime: "1200", Category: "POP", FcstValue: "80"},
		// Unparseable timestamps are dropped.
		{FcstDate: "bogus", FcstTime: "9999", Category: "TMP", FcstValue: "1"},
	}

	slots := c.parseSlots(items)
	if len(slots) != 2 {
		t.Fatalf("parseSlots() returned %d slots, want 2", len(slots))
	}

	noon := slots[0]
	if noon.Time.Hour() != 12 {
		t.Errorf("first slot hour = %d, want 12", noon.Time.Hour())
	}
	if noon.Temperature != 25 || noon.Sky != "흐림" || noon.PrecipType != "비" || noon.PrecipProb != 80 {
		t.Errorf("noon slot = %+v", noon)
	}

	three := slots[1]
	if three.Temperature != 27 || three.Humidity != 65 || three.WindSpeed != 3.4 {
		t.Errorf("afternoon slot = %+v", three)
	}
	if three.Sky != "맑음" || three.PrecipType != PrecipTypeNone {
		t.Errorf("afternoon slot sky/precip = %q/%q", three.Sky, three.PrecipType)
	}
	if three.Precip != "강수없음" {
		t.Errorf("afternoon PCP = %q", three.Precip)
	}
}

func TestParseSlotsCapped(t *testing.T) {
	c := NewClient("key", time.UTC)

	var items []apiItem
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		ts := base.Add(time.Duration(i*3) * time.Hour)
		items = append(items, apiItem{
			FcstDate: ts.Format("20060102"), FcstTime: ts.Format("1504"),
			Category: "TMP", FcstValue: "20",
		})
	}
	if got := len(c.parseSlots(items)); got != maxSlots {
		t.Errorf("parseSlots() returned %d slots, want capped at %d", got, maxSlots)
	}
}

func TestFetchShortTermLive(t *testing.T) {
	resp := apiResponse{}
	resp.Response.Body.Items.Item = []apiItem{
		{FcstDate: "20260830", FcstTime: "1500", Category: "TMP", FcstValue: "27"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "POP", FcstValue: "70"},
		{FcstDate: "20260830", FcstTime: "1500", Category: "PTY", FcstValue: "1"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getVilageFcst" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("dataType") != "JSON" || q.Get("nx") == "" || q.Get("ny") == "" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("key", time.UTC)
	c.SetBaseURL(srv.URL)

	slots := c.FetchShortTerm(context.Background(), "서울특별시", "강남구")
	if len(slots) != 1 {
		t.Fatalf("FetchShortTerm() returned %d slots, want 1", len(slots))
	}
	if slots[0].Temperature != 27 || slots[0].PrecipProb != 70 || slots[0].PrecipType != "비" {
		t.Errorf("slot = %+v", slots[0])
	}
}

func TestFetchShortTermFallsBackToMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("key", time.UTC)
	c.SetBaseURL(srv.URL)

	slots := c.FetchShortTerm(context.Background(), "서울특별시", "강남구")
	if len(slots) != 8 {
		t.Fatalf("mock fallback returned %d slots, want 8", len(slots))
	}
	for i, slot := range slots {
		if slot.PrecipType != PrecipTypeNone {
			t.Errorf("mock slot %d PrecipType = %q, want %q", i, slot.PrecipType, PrecipTypeNone)
		}
		if slot.Temperature < 10 || slot.Temperature > 30 {
			t.Errorf("mock slot %d Temperature = %v, want within the pool bounds", i, slot.Temperature)
		}
	}
}

func TestFetchShortTermWithoutKeyUsesMock(t *testing.T) {
	c := NewClient("", time.UTC)
	slots := c.FetchShortTerm(context.Background(), "서울특별시", "강남구")
	if len(slots) != 8 {
		t.Errorf("FetchShortTerm() without key returned %d slots, want 8", len(slots))
	}
}

func TestGridFor(t *testing.T) {
	tests := []struct {
		name string
		sido string
		area string
		want gridPoint
	}{
		{"full sido name", "서울특별시", "강남구", gridPoint{61, 126}},
		{"short sido name", "서울", "강남구", gridPoint{61, 126}},
		{"province alias", "충청남도", "천안시", gridPoint{63, 110}},
		{"unknown area falls back to Seoul", "서울특별시", "은평구", seoulGrid},
		{"unknown sido falls back to Seoul", "아틀란티스", "수몰구", seoulGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gridFor(tt.sido, tt.area); got != tt.want {
				t.Errorf("gridFor(%s, %s) = %+v, want %+v", tt.sido, tt.area, got, tt.want)
			}
		})
	}
}
