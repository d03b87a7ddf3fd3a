package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"deal-analyzer/config"
	"deal-analyzer/domain"
	httpLayer "deal-analyzer/http"
	"deal-analyzer/report"
	"deal-analyzer/repository"
	"deal-analyzer/service"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "deal-analyzer",
		Short:         "Flip and rental metrics for real-estate deals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to YAML config file")

	root.AddCommand(serveCmd())
	root.AddCommand(analyzeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			level, _ := config.ParseLevel(cfg.LogLevel)
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	cache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	dealService := service.NewDealAnalysisService(cache)
	mortgageService := service.NewMortgageService()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.NewDealHandler(dealService),
		httpLayer.NewMortgageHandler(mortgageService),
		rateLimiter,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("deal analyzer listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server exited")
	return nil
}

func newCache(ctx context.Context, cfg config.Config) (repository.CacheRepository, func(), error) {
	if cfg.RedisURL == "" {
		slog.Info("using in-memory analysis cache", "ttl", cfg.CacheTTL, "max_entries", cfg.CacheMaxEntries)
		return repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := repository.Connect(connectCtx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect cache: %w", err)
	}
	cache := repository.NewRedisCache(client, cfg.CacheTTL)
	slog.Info("using redis analysis cache", "ttl", cfg.CacheTTL)

	return cache, func() {
		if err := cache.Close(); err != nil {
			slog.Warn("failed to close redis cache", "error", err)
		}
	}, nil
}

func analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Analyze a deal described in a JSON file",
		Long: `Reads a deal document and prints its flip and rental metrics.

The document has the same shape as the POST /deals/analyze body:

  {"property": {"purchase_price": 200000, "repair_cost": 50000, "arv": 350000},
   "rental_assumptions": {"monthly_rent": 2500},
   "buying_criteria": {"your_profit_pct": 20}}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))

			input, err := readDealInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			metrics := service.Analyze(input.Property, input.RentalAssumptions, input.BuyingCriteria)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(metrics)
			}
			return report.Write(out, metrics)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")

	return cmd
}

func readDealInput(stdin io.Reader, path string) (domain.DealAnalysisInput, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.DealAnalysisInput{}, fmt.Errorf("open deal file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var input domain.DealAnalysisInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return domain.DealAnalysisInput{}, fmt.Errorf("decode deal file: %w", err)
	}
	return input, nil
}
