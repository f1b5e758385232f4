package kma

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jaehokim/nalssibot/internal/metrics"
	"github.com/jaehokim/nalssibot/internal/models"
)

const (
	// Observations lag; request the record one hour back, on the hour.
	observationLag = time.Hour

	// Responses shorter than this carry no record worth parsing.
	minResponseBytes = 10

	// FetchTimeout is the hard cap on one observation fetch. The next
	// scheduler tick is the retry, so there is no in-request retry.
	FetchTimeout = 10 * time.Second
)

const defaultBaseURL = "https://apihub.kma.go.kr"

// Client fetches current surface observations from the KMA API hub.
// Fetch never fails past this boundary: any error path yields a synthetic
// observation so callers always have an answer.
type Client struct {
	authKey string
	baseURL string
	client  *http.Client
	clock   clockwork.Clock
	loc     *time.Location

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewClient(authKey string, loc *time.Location) *Client {
	return &Client{
		authKey: authKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: FetchTimeout},
		clock:   clockwork.NewRealClock(),
		loc:     loc,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetBaseURL overrides the API host, for tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// SetClock overrides the time source, for tests.
func (c *Client) SetClock(clk clockwork.Clock) { c.clock = clk }

// Fetch returns the current observation for a (sido, area) pair. Unknown
// pairs, transport errors, timeouts, short responses and parse failures all
// fall back to a synthetic observation without raising.
func (c *Client) Fetch(ctx context.Context, sido, area string) models.Observation {
	station, ok := StationCode(sido, area)
	if !ok {
		log.Printf("kma: no station for %s %s, using synthetic data", sido, area)
		return c.synthetic(sido, area)
	}

	if c.authKey == "" {
		log.Printf("kma: no auth key configured, using synthetic data")
		return c.synthetic(sido, area)
	}

	tm := formatObsTime(c.clock.Now().In(c.loc))
	url := fmt.Sprintf("%s/api/typ01/url/kma_sfctm2.php?tm=%s&stn=%d&help=1&authKey=%s",
		c.baseURL, tm, station, c.authKey)

	obs, err := c.fetchOne(ctx, station, url)
	if err != nil {
		log.Printf("kma: fetch %s %s (stn %d): %v", sido, area, station, err)
		return c.synthetic(sido, area)
	}

	obs.Sido = sido
	obs.Area = area
	obs.StationCode = station
	obs.Source = models.SourceLive
	obs.FetchedAt = c.clock.Now()
	return obs
}

func (c *Client) fetchOne(ctx context.Context, station int, url string) (models.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Observation{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "nalssibot/1.0")

	start := c.clock.Now()
	resp, err := c.client.Do(req)
	label := strconv.Itoa(station)
	if err != nil {
		metrics.KMAAPICallsTotal.WithLabelValues(label, "error").Inc()
		return models.Observation{}, fmt.Errorf("fetch observation: %w", err)
	}
	defer resp.Body.Close()
	metrics.KMAAPILatency.WithLabelValues(label).Observe(c.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.KMAAPICallsTotal.WithLabelValues(label, strconv.Itoa(resp.StatusCode)).Inc()
		return models.Observation{}, fmt.Errorf("fetch observation: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.KMAAPICallsTotal.WithLabelValues(label, "error").Inc()
		return models.Observation{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) < minResponseBytes {
		metrics.KMAAPICallsTotal.WithLabelValues(label, "empty").Inc()
		return models.Observation{}, fmt.Errorf("response too short: %d bytes", len(body))
	}

	obs, flags, err := ParseObservation(string(body), c.loc)
	if err != nil {
		metrics.KMAAPICallsTotal.WithLabelValues(label, "parse_error").Inc()
		return models.Observation{}, err
	}
	if len(flags) > 0 {
		log.Printf("kma: stn %d readings replaced: %v", station, flags)
	}

	metrics.KMAAPICallsTotal.WithLabelValues(label, "ok").Inc()
	return obs, nil
}

func (c *Client) synthetic(sido, area string) models.Observation {
	metrics.SyntheticObservationsTotal.Inc()
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return Synthetic(c.rng, sido, area, c.clock.Now())
}

// formatObsTime renders the request timestamp: one hour back, on the hour.
func formatObsTime(now time.Time) string {
	t := now.Add(-observationLag)
	return fmt.Sprintf("%04d%02d%02d%02d00", t.Year(), t.Month(), t.Day(), t.Hour())
}
