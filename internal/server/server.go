// Package server exposes the analysis engine over HTTP: the assembled report,
// per-domain slices, dataset inspection and a WebSocket analyst chat.
package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"brasserie/internal/analyst"
	"brasserie/internal/dataset"
	"brasserie/internal/monitoring"
	"brasserie/internal/report"
)

// Server handles analysis requests over the loaded datasets.
type Server struct {
	router  *gin.Engine
	log     *logrus.Logger
	monitor *monitoring.Monitor

	dataDir string
	topN    int

	// analyst is nil when no model credentials are configured; the chat
	// endpoints respond with 503 in that case.
	analyst *analyst.Analyst

	mu     sync.RWMutex
	tables *dataset.Tables
	report *report.Report
}

// Options configures a server instance.
type Options struct {
	DataDir string
	TopN    int
	Logger  *logrus.Logger
	Monitor *monitoring.Monitor
	Analyst *analyst.Analyst
}

// NewServer creates a server over pre-loaded tables and their report.
func NewServer(tables *dataset.Tables, rep *report.Report, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewMonitor()
	}

	s := &Server{
		router:  gin.Default(),
		log:     log,
		monitor: monitor,
		dataDir: opts.DataDir,
		topN:    opts.TopN,
		analyst: opts.Analyst,
		tables:  tables,
		report:  rep,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/report", s.handleReport)
		api.GET("/report/:domain", s.handleReportDomain)
		api.GET("/recommendations", s.handleRecommendations)
		api.GET("/datasets", s.handleListDatasets)
		api.GET("/datasets/:name", s.handleDataset)
		api.GET("/metrics", s.handleMetrics)
		api.POST("/refresh", s.handleRefresh)
	}
}

// Router returns the Gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// currentReport returns the cached report under the read lock.
func (s *Server) currentReport() *report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// refresh reloads the datasets from disk and rebuilds the report.
func (s *Server) refresh() (*report.Report, error) {
	tables, err := dataset.Load(s.dataDir)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rep, err := report.Run(tables, report.Options{TopN: s.topN})
	if err != nil {
		return nil, err
	}

	kinds := make([]string, len(rep.Warnings))
	for i, w := range rep.Warnings {
		kinds[i] = w.Kind
	}
	s.monitor.RecordRun(time.Since(start), kinds)
	s.monitor.RecordDatasetRows(datasetRows(tables))

	s.mu.Lock()
	s.tables = tables
	s.report = rep
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"run_id":   rep.RunID,
		"warnings": len(rep.Warnings),
	}).Info("report refreshed")

	return rep, nil
}

func datasetRows(tables *dataset.Tables) map[string]int {
	return map[string]int{
		"pos_sales":            len(tables.Transactions),
		"menu":                 len(tables.Menu),
		"crm_loyalty":          len(tables.Customers),
		"inventory":            len(tables.Inventory),
		"hr_staff":             len(tables.Staff),
		"marketing_promotions": len(tables.Promotions),
		"reviews":              len(tables.Reviews),
		"reservations":         len(tables.Reservations),
		"finance_accounting":   len(tables.Finance),
	}
}
