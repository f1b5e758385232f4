package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"

	"github.com/jaehokim/nalssibot/internal/forecast"
	"github.com/jaehokim/nalssibot/internal/metrics"
	"github.com/jaehokim/nalssibot/internal/models"
)

// Tick intervals per alert kind.
const (
	alertInterval = 10 * time.Minute
	rainInterval  = 5 * time.Minute

	// tickBudget bounds one tick's total work; what has not finished by
	// then is abandoned so ticks cannot pile up.
	tickBudget = 2 * time.Minute

	// maxConcurrent caps the per-tick subscription fan-out.
	maxConcurrent = 8
)

// WeatherProvider answers current-weather lookups (cache + source adapter).
type WeatherProvider interface {
	Current(ctx context.Context, sido, area string) models.Observation
}

// ForecastProvider answers short-term forecast lookups.
type ForecastProvider interface {
	FetchShortTerm(ctx context.Context, sido, area string) []forecast.Slot
}

// SubscriptionLister is the slice of the store the notifier reads.
type SubscriptionLister interface {
	ListActive(kind models.AlertKind) ([]models.Subscription, error)
}

// Notifier drives the three notification schedules. Each kind runs on its
// own timer; a tick of one kind never blocks the others, and a tick of the
// same kind never overlaps its predecessor.
type Notifier struct {
	subs     SubscriptionLister
	weather  WeatherProvider
	forecast ForecastProvider
	channel  Channel
	clock    clockwork.Clock
	loc      *time.Location

	scheduler *gocron.Scheduler
}

func New(subs SubscriptionLister, weather WeatherProvider, fc ForecastProvider, channel Channel, loc *time.Location) *Notifier {
	return &Notifier{
		subs:     subs,
		weather:  weather,
		forecast: fc,
		channel:  channel,
		clock:    clockwork.NewRealClock(),
		loc:      loc,
	}
}

// SetClock overrides the time source, for tests.
func (n *Notifier) SetClock(clk clockwork.Clock) { n.clock = clk }

// Start registers the three jobs and runs them until Stop.
func (n *Notifier) Start() error {
	s := gocron.NewScheduler(n.loc)

	if _, err := s.Cron("* * * * *").SingletonMode().Do(n.runDailyTick); err != nil {
		return fmt.Errorf("schedule daily job: %w", err)
	}
	if _, err := s.Every(int(alertInterval.Minutes())).Minutes().SingletonMode().Do(n.runAlertTick); err != nil {
		return fmt.Errorf("schedule alert job: %w", err)
	}
	if _, err := s.Every(int(rainInterval.Minutes())).Minutes().SingletonMode().Do(n.runRainTick); err != nil {
		return fmt.Errorf("schedule rain job: %w", err)
	}

	s.StartAsync()
	n.scheduler = s
	log.Println("notify: schedules started")
	return nil
}

// Stop halts the timers. In-flight ticks finish on their own budget.
func (n *Notifier) Stop() {
	if n.scheduler != nil {
		n.scheduler.Stop()
	}
}

// RunOnce executes one tick of every kind, for the --once mode.
func (n *Notifier) RunOnce() {
	n.runDailyTick()
	n.runAlertTick()
	n.runRainTick()
}

// runDailyTick delivers the digest to every daily subscription scheduled
// for the current wall-clock minute.
func (n *Notifier) runDailyTick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickBudget)
	defer cancel()

	subs, err := n.subs.ListActive(models.KindDaily)
	if err != nil {
		log.Printf("notify: list daily subscriptions: %v", err)
		return
	}

	hhmm := n.clock.Now().In(n.loc).Format("15:04")
	var due []models.Subscription
	for _, sub := range subs {
		if sub.Time.Valid && sub.Time.String == hhmm {
			due = append(due, sub)
		}
	}
	if len(due) == 0 {
		return
	}

	n.forEach(ctx, due, models.KindDaily, func(ctx context.Context, sub models.Subscription) error {
		obs := n.weather.Current(ctx, sub.Sido, sub.Area)
		slots := n.forecast.FetchShortTerm(ctx, sub.Sido, sub.Area)
		return n.deliver(ctx, sub, models.KindDaily, DigestMessage(sub, obs, slots))
	})
}

// runAlertTick checks thresholds for every weather-alert subscription.
// Synthetic observations never trigger alerts: random fallback data is not
// evidence of real weather.
func (n *Notifier) runAlertTick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickBudget)
	defer cancel()

	subs, err := n.subs.ListActive(models.KindWeatherAlert)
	if err != nil {
		log.Printf("notify: list alert subscriptions: %v", err)
		return
	}

	n.forEach(ctx, subs, models.KindWeatherAlert, func(ctx context.Context, sub models.Subscription) error {
		obs := n.weather.Current(ctx, sub.Sido, sub.Area)
		if obs.Source == models.SourceSynthetic {
			return nil
		}
		event, ok := EvaluateThresholds(sub, obs)
		if !ok {
			return nil
		}
		return n.deliver(ctx, sub, models.KindWeatherAlert, AlertMessage(event))
	})
}

// runRainTick checks the next two forecast slots for every rain-alert
// subscription.
func (n *Notifier) runRainTick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickBudget)
	defer cancel()

	subs, err := n.subs.ListActive(models.KindRainAlert)
	if err != nil {
		log.Printf("notify: list rain subscriptions: %v", err)
		return
	}

	n.forEach(ctx, subs, models.KindRainAlert, func(ctx context.Context, sub models.Subscription) error {
		slots := n.forecast.FetchShortTerm(ctx, sub.Sido, sub.Area)
		slot, ok := UpcomingRain(slots)
		if !ok {
			return nil
		}
		return n.deliver(ctx, sub, models.KindRainAlert, RainMessage(sub, slot))
	})
}

// forEach fans fn out over subscriptions with bounded concurrency and joins
// before returning, so one tick completes before the next of its kind is
// allowed to start. A failing subscription is logged and never aborts the
// others.
func (n *Notifier) forEach(ctx context.Context, subs []models.Subscription, kind models.AlertKind, fn func(context.Context, models.Subscription) error) {
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	for _, sub := range subs {
		if ctx.Err() != nil {
			log.Printf("notify: %s tick budget exhausted, abandoning remainder", kind)
			break
		}
		sub := sub
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := fn(ctx, sub); err != nil {
				metrics.NotificationFailuresTotal.WithLabelValues(string(kind)).Inc()
				log.Printf("notify: %s subscription %d (%s %s): %v", kind, sub.ID, sub.Sido, sub.Area, err)
			}
		}()
	}
	wg.Wait()
}

// deliver resolves the target and sends. Failures are returned to forEach
// for logging; there is no same-tick retry.
func (n *Notifier) deliver(ctx context.Context, sub models.Subscription, kind models.AlertKind, msg Message) error {
	target := ResolveTarget(sub)
	if err := n.channel.Send(ctx, target, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(kind)).Inc()
	return nil
}
