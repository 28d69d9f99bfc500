package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authendpoint"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authservice"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authtransport"
	"github.com/ichigozero/todokit/backend/config"
	"github.com/ichigozero/todokit/backend/db"
	"github.com/ichigozero/todokit/backend/tasksvc"
	taskgorm "github.com/ichigozero/todokit/backend/tasksvc/db/gorm"
	"github.com/ichigozero/todokit/backend/tasksvc/pkg/taskendpoint"
	"github.com/ichigozero/todokit/backend/tasksvc/pkg/taskservice"
	"github.com/ichigozero/todokit/backend/tasksvc/pkg/tasktransport"
	"github.com/ichigozero/todokit/backend/usersvc"
	usergorm "github.com/ichigozero/todokit/backend/usersvc/db/gorm"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

func main() {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log("during", "config", "err", err)
		os.Exit(1)
	}

	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log("during", "db.Connect", "err", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(&usersvc.User{}, &tasksvc.Task{}); err != nil {
		logger.Log("during", "AutoMigrate", "err", err)
		os.Exit(1)
	}

	var (
		userRepository = usergorm.NewUserRepository(gormDB)
		taskRepository = taskgorm.NewTaskRepository(gormDB)
		tokenizer      = authservice.NewTokenizer([]byte(cfg.AuthSecret), cfg.TokenLifetime())
	)

	var requestCount metrics.Counter
	var requestLatency metrics.Histogram
	{
		requestCount = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "todokit",
			Subsystem: "tasksvc",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, []string{"method"})
		requestLatency = kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "todokit",
			Subsystem: "tasksvc",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, []string{"method"})
	}

	var (
		accountService   = authservice.New(userRepository, tokenizer, logger)
		accountEndpoints = authendpoint.New(accountService, logger)
		taskService      = taskservice.New(taskRepository, logger, requestCount, requestLatency)
		taskEndpoints    = taskendpoint.New(taskService, logger)
	)

	r := mux.NewRouter()
	r.PathPrefix("/auth").Handler(authtransport.NewHTTPHandler(accountEndpoints, tokenizer, logger))
	r.PathPrefix("/api").Handler(tasktransport.NewHTTPHandler(taskEndpoints, tokenizer, logger))
	r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	r.Methods("GET").Path("/health").HandlerFunc(healthHandler)
	r.Methods("GET").Path("/").HandlerFunc(healthHandler)

	handler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)

	var g run.Group
	{
		server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
		g.Add(func() error {
			logger.Log("transport", "HTTP", "addr", cfg.HTTPAddr)
			return server.ListenAndServe()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		})
	}
	{
		// This actor just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-c:
				return fmt.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}
	logger.Log("exit", g.Run())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
