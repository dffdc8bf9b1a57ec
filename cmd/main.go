package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"brasserie/internal/analyst"
	"brasserie/internal/config"
	"brasserie/internal/dataset"
	"brasserie/internal/monitoring"
	"brasserie/internal/report"
	"brasserie/internal/server"
)

var configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	tables, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}

	monitor := monitoring.NewMonitor()

	start := time.Now()
	rep, err := report.Run(tables, report.Options{TopN: cfg.TopN})
	if err != nil {
		log.Fatalf("Failed to run analysis: %v", err)
	}
	kinds := make([]string, len(rep.Warnings))
	for i, w := range rep.Warnings {
		kinds[i] = w.Kind
	}
	monitor.RecordRun(time.Since(start), kinds)

	log.WithFields(logrus.Fields{
		"run_id":   rep.RunID,
		"warnings": len(rep.Warnings),
	}).Info("initial report generated")

	chat, err := initializeAnalyst(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize analyst: %v", err)
	}

	srv := server.NewServer(tables, rep, server.Options{
		DataDir: cfg.DataDir,
		TopN:    cfg.TopN,
		Logger:  log,
		Monitor: monitor,
		Analyst: chat,
	})

	go startMetricsServer(cfg.MetricsAddress, monitor, log)

	apiServer := &http.Server{
		Addr:    cfg.Address,
		Handler: srv.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("API server shutdown error: %v", err)
		}
	}()

	log.Infof("Starting API server on %s", cfg.Address)
	if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// initializeAnalyst wires the chat analyst when OPENAI_API_KEY is set; the
// server runs without chat otherwise.
func initializeAnalyst(cfg *config.Config, log *logrus.Logger) (*analyst.Analyst, error) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Warn("OPENAI_API_KEY not set, analyst chat disabled")
		return nil, nil
	}

	files, err := analyst.LoadFiles(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return analyst.NewOpenAI(cfg.Model, files)
}

func startMetricsServer(addr string, monitor *monitoring.Monitor, log *logrus.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(monitor.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    addr,
		Handler: metricsRouter,
	}

	log.Infof("Starting metrics server on %s", addr)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Errorf("Metrics server error: %v", err)
	}
}
