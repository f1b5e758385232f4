package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/jaehokim/nalssibot/internal/metrics"
)

const defaultBaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"

// The village forecast is issued eight times a day at these base times.
var baseTimes = []int{2, 5, 8, 11, 14, 17, 20, 23}

// maxSlots caps the parsed window: three days of 3-hourly entries.
const maxSlots = 24

// Client fetches the short-term (3-day, 3-hourly) village forecast.
// FetchShortTerm never fails past this boundary: error paths return a mock
// forecast so digests and rain checks always have slots to inspect.
type Client struct {
	serviceKey string
	baseURL    string
	client     *http.Client
	clock      clockwork.Clock
	loc        *time.Location
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(serviceKey string, loc *time.Location) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "village_forecast",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		serviceKey: serviceKey,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		clock:      clockwork.NewRealClock(),
		loc:        loc,
		breaker:    cb,
	}
}

// SetBaseURL overrides the API host, for tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// SetClock overrides the time source, for tests.
func (c *Client) SetClock(clk clockwork.Clock) { c.clock = clk }

type apiResponse struct {
	Response struct {
		Body struct {
			Items struct {
				Item []apiItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type apiItem struct {
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	Category  string `json:"category"`
	FcstValue string `json:"fcstValue"`
}

// FetchShortTerm returns up to 24 forecast slots for a location. Any
// failure, including an open circuit, yields a mock forecast.
func (c *Client) FetchShortTerm(ctx context.Context, sido, area string) []Slot {
	if c.serviceKey == "" {
		return c.mockForecast()
	}

	grid := gridFor(sido, area)
	baseDate, baseTime := c.baseIssue()

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("numOfRows", "290")
	q.Set("pageNo", "1")
	q.Set("dataType", "JSON")
	q.Set("base_date", baseDate)
	q.Set("base_time", baseTime)
	q.Set("nx", strconv.Itoa(grid.NX))
	q.Set("ny", strconv.Itoa(grid.NY))
	reqURL := c.baseURL + "/getVilageFcst?" + q.Encode()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchItems(ctx, reqURL)
	})
	if err != nil {
		metrics.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		log.Printf("forecast: fetch %s %s: %v", sido, area, err)
		return c.mockForecast()
	}

	metrics.ForecastAPICallsTotal.WithLabelValues("ok").Inc()
	return c.parseSlots(result.([]apiItem))
}

func (c *Client) fetchItems(ctx context.Context, reqURL string) ([]apiItem, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch forecast: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(fmt.Errorf("fetch forecast: status %d", resp.StatusCode))
			}
			return fmt.Errorf("fetch forecast: status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	items := data.Response.Body.Items.Item
	if len(items) == 0 {
		return nil, fmt.Errorf("no forecast items returned")
	}
	return items, nil
}

// parseSlots folds the per-category item stream into 3-hourly slots, sorted
// by forecast time.
func (c *Client) parseSlots(items []apiItem) []Slot {
	byKey := make(map[string]*Slot)
	for _, item := range items {
		key := item.FcstDate + item.FcstTime
		slot, ok := byKey[key]
		if !ok {
			t, err := time.ParseInLocation("200601021504", key, c.loc)
			if err != nil {
				continue
			}
			slot = &Slot{Time: t, PrecipType: PrecipTypeNone}
			byKey[key] = slot
		}

		switch item.Category {
		case "TMP":
			slot.Temperature = parseNum(item.FcstValue)
		case "REH":
			slot.Humidity = parseNum(item.FcstValue)
		case "WSD":
			slot.WindSpeed = parseNum(item.FcstValue)
		case "SKY":
			slot.Sky = skyCondition(item.FcstValue)
		case "PTY":
			slot.PrecipType = precipType(item.FcstValue)
		case "POP":
			slot.PrecipProb = parseNum(item.FcstValue)
		case "PCP":
			slot.Precip = item.FcstValue
		}
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	slots := make([]Slot, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, *byKey[key])
		if len(slots) == maxSlots {
			break
		}
	}
	return slots
}

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// baseIssue picks the latest published issue for the current wall clock.
// Before the 02:00 issue the previous day's 23:00 one is the newest.
func (c *Client) baseIssue() (string, string) {
	now := c.clock.Now().In(c.loc)
	for i := len(baseTimes) - 1; i >= 0; i-- {
		if now.Hour() >= baseTimes[i] {
			return now.Format("20060102"), fmt.Sprintf("%02d00", baseTimes[i])
		}
	}
	yesterday := now.AddDate(0, 0, -1)
	return yesterday.Format("20060102"), "2300"
}
