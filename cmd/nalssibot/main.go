package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/jaehokim/nalssibot/internal/discord"
	"github.com/jaehokim/nalssibot/internal/forecast"
	"github.com/jaehokim/nalssibot/internal/kma"
	"github.com/jaehokim/nalssibot/internal/notify"
	"github.com/jaehokim/nalssibot/internal/store"
	"github.com/jaehokim/nalssibot/internal/weather"
)

var cli struct {
	DB           string        `help:"Path to SQLite database." default:"data/nalssibot.db"`
	MetricsAddr  string        `help:"Listen address for the /metrics endpoint." default:":9100"`
	KMAAuthKey   string        `name:"kma-auth-key" env:"KMA_API_KEY" help:"KMA API hub auth key. Without one observations are synthetic."`
	ForecastKey  string        `name:"forecast-key" env:"KMA_FORECAST_KEY" help:"data.go.kr village forecast service key."`
	DiscordToken string        `env:"DISCORD_TOKEN" help:"Discord bot token. Without one deliveries go to the process log."`
	CacheTTL     time.Duration `help:"Observation cache TTL." default:"10m"`
	Once         bool          `help:"Run one tick of every schedule and exit."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("nalssibot"),
		kong.Description("KMA weather notification service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Printf("Warning: could not load Asia/Seoul timezone, using UTC: %v", err)
		loc = time.UTC
	}

	st := store.New(db, loc)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	kmaClient := kma.NewClient(cli.KMAAuthKey, loc)
	fcClient := forecast.NewClient(cli.ForecastKey, loc)
	cache := weather.NewCache(cli.CacheTTL, clockwork.NewRealClock(), st)
	svc := weather.NewService(cache, kmaClient.Fetch)

	var channel notify.Channel = notify.LogChannel{}
	if cli.DiscordToken != "" {
		channel = discord.NewClient(cli.DiscordToken)
	} else {
		log.Println("no Discord token configured, logging deliveries")
	}

	notifier := notify.New(st, svc, fcClient, channel, loc)

	if cli.Once {
		log.Println("running single tick of every schedule")
		notifier.RunOnce()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go cache.StartSweeper(ctx, cli.CacheTTL)

	if err := notifier.Start(); err != nil {
		log.Fatalf("start notifier: %v", err)
	}
	defer notifier.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cli.MetricsAddr, Handler: mux}
	go func() {
		log.Printf("metrics listening on %s", cli.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}
