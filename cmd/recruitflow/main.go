package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recruitflow-go/internal/api"
	"recruitflow-go/internal/format"
	"recruitflow-go/internal/notify"
	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/logging"
	"recruitflow-go/internal/realtime"
	"recruitflow-go/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "recruitflow failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	identifier := flag.String("user", os.Getenv("RECRUITFLOW_USER"), "login identifier")
	password := flag.String("password", os.Getenv("RECRUITFLOW_PASSWORD"), "login password")
	flag.Parse()

	loader := config.NewLoader().WithPath(*configPath)
	result, err := loader.Load()
	if err != nil {
		return err
	}
	cfg := result.Config

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	store := session.NewStore(cfg.Session.CredentialsFile)
	client, err := session.NewClient(cfg.API, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !client.Authenticated() {
		if *identifier == "" || *password == "" {
			return fmt.Errorf("no stored session; pass -user and -password to log in")
		}
		if _, err := client.Login(ctx, *identifier, *password); err != nil {
			return err
		}
	}
	client.FetchCSRFToken(ctx)

	facade := api.New(client, logger)
	if err := printOverview(ctx, facade); err != nil {
		return err
	}

	hub := notify.NewHub(4, logger)
	hub.Start()
	defer hub.Stop()

	hub.Subscribe(notify.TopicNotification, func(payload map[string]any) {
		fmt.Printf("  notification: %v\n", payload["title"])
	})
	hub.Subscribe(notify.TopicCandidateUpdated, func(payload map[string]any) {
		fmt.Printf("  candidate update: %v\n", payload["message"])
	})

	channel := realtime.NewChannel(cfg.Realtime, func() string {
		return client.Session().Access
	}, logger)
	defer channel.Disconnect()

	notify.Bridge(channel, hub)
	if err := channel.Connect(ctx); err != nil {
		logger.Warn("realtime channel unavailable: %v", err)
	}

	fmt.Println("listening for events, Ctrl-C to exit")
	<-ctx.Done()

	client.Logout(context.Background())
	return nil
}

func printOverview(ctx context.Context, facade *api.API) error {
	stats, err := facade.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("dashboard: %d candidatos, %d procesos, %d clientes\n",
		asInt(stats["total_candidates"]), asInt(stats["total_processes"]), asInt(stats["total_clients"]))

	candidates, err := facade.ListCandidates(ctx, api.CandidateFilters{})
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		model, err := format.FromWire(candidate, format.KindCandidate)
		if err != nil {
			return err
		}
		status, _ := candidate["status"].(string)
		fmt.Printf("  [%s] %v %v <%v>\n",
			format.StatusClass(status), model["firstName"], model["lastName"], model["email"])
	}
	return nil
}

func asInt(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}
