package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Girder/internal/auth"
	"Girder/internal/calc/beam"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/premium/autodesign"
	"Girder/internal/calc/premium/batch"
	"Girder/internal/calc/premium/importer"
	"Girder/internal/calc/premium/recommend"
	"Girder/internal/calc/report"
	"Girder/internal/config"
	"Girder/internal/repo"
	"Girder/internal/runs"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, store repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store}
	recorder := &runs.Service{Repo: store}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	beamH := &beam.Handler{Runs: recorder}
	api.HandleFunc("/materials", beamH.Materials).Methods("GET")
	api.HandleFunc("/sections", beamH.Sections).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	optimizeH := &autodesign.Handler{Runs: recorder, Workers: cfg.OptimizerWorkers, Timeout: cfg.OptimizerTimeout}
	recommendH := &recommend.Handler{Runs: recorder}
	batchH := &batch.Handler{Runs: recorder}
	loadsH := &loads.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{Workers: cfg.OptimizerWorkers, Timeout: cfg.OptimizerTimeout}
	runsH := &runs.Handler{Repo: store}

	secureApi.HandleFunc("/tools/beam/analyze", beamH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/beam/optimize", optimizeH.Optimize).Methods("POST")
	secureApi.HandleFunc("/tools/beam/recommend", recommendH.Height).Methods("POST")
	secureApi.HandleFunc("/tools/beam/batch", batchH.Beam).Methods("POST")
	secureApi.HandleFunc("/tools/loads/combine", loadsH.Combine).Methods("POST")
	secureApi.HandleFunc("/tools/loads/import", importH.Profile).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/runs", runsH.List).Methods("GET")
	secureApi.HandleFunc("/runs/{id}", runsH.Get).Methods("GET")
}

// openStore connects to Postgres when DATABASE_URL is set and otherwise
// keeps everything in memory.
func openStore(ctx context.Context, cfg config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory storage")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgresUserDB(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config error: ", err)
	}
	if err := cfg.RequireTokenKey(); err != nil {
		log.Fatal(err)
	}
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Database error: ", err)
	}
	defer closeStore()

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s (tls=%t)", cfg.Addr, cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	wg.Wait()
	log.Println("Server stopped")
}
