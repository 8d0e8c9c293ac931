package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/itinera/internal/cache"
	"github.com/alexanderramin/itinera/internal/cli"
	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/datasource"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/obs"
	"github.com/alexanderramin/itinera/internal/poigen"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/timematrix"
	"github.com/alexanderramin/itinera/internal/travel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; env vars win over the YAML file either way.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ITINERA_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// DB path: config or default ~/.itinera/itinera.db
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".itinera", "itinera.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	dirRepo := repository.NewSQLiteDirectionRepo(database)
	placeRepo := repository.NewSQLitePlaceRepo(database)

	backend := cache.NewMemory()
	selCache := cache.NewSelectionCache(backend, cfg.Cache, nil)
	poolCache := cache.NewPoolCache(backend, cfg.Cache, nil)

	// Travel-time provider: remote when configured, estimate otherwise.
	var provider timematrix.Provider
	if cfg.Provider.TravelTimeURL != "" {
		provider = timematrix.NewCachedProvider(travel.NewClient(travel.Config{
			BaseURL: cfg.Provider.TravelTimeURL,
			Timeout: cfg.Provider.Timeout,
		}))
	}
	builder := timematrix.NewBuilder(provider, timematrix.PolicyFromConfig(cfg.Transport))

	store := obs.NewStore(cfg.Trace.StoreCap)
	metrics := obs.NewMetrics(prometheus.DefaultRegisterer)

	registry := datasource.NewRegistry(datasource.NewGeocoder(cfg.Countries))
	datasource.RegisterBuiltins(registry)

	observer := service.NewLogUseCaseObserver(os.Stderr)
	dirSvc := service.NewDirectionService(dirRepo, selCache, observer)
	candSvc := service.NewCandidateService(poigen.NewGenerator(placeRepo), poolCache, observer)

	app := &cli.App{
		Plan:       service.NewPlanService(dirSvc, candSvc, builder, store, metrics, observer),
		Directions: dirSvc,
		Candidates: candSvc,
		Traces:     service.NewTraceService(store, metrics),
		Import:     service.NewImportService(dirRepo, placeRepo, observer),
		Route:      registry,
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColors()
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
