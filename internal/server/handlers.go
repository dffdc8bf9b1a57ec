package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealth reports liveness and whether the analyst chat is available.
func (s *Server) handleHealth(c *gin.Context) {
	rep := s.currentReport()
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"run_id":            rep.RunID,
		"generated_at":      rep.GeneratedAt,
		"analyst_available": s.analyst != nil,
	})
}

// handleReport returns the full assembled report.
func (s *Server) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.currentReport())
}

// handleReportDomain returns one domain slice of the report.
func (s *Server) handleReportDomain(c *gin.Context) {
	rep := s.currentReport()

	domains := map[string]interface{}{
		"sales":        rep.Sales,
		"menu":         rep.Menu,
		"loyalty":      rep.Loyalty,
		"inventory":    rep.Inventory,
		"staff":        rep.Staff,
		"marketing":    rep.Marketing,
		"reviews":      rep.Reviews,
		"reservations": rep.Reservations,
		"finance":      rep.Finance,
		"ratios":       rep.Ratios,
	}

	name := c.Param("domain")
	domain, ok := domains[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report domain: " + name})
		return
	}
	c.JSON(http.StatusOK, domain)
}

// handleRecommendations returns only the synthesized recommendations.
func (s *Server) handleRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, s.currentReport().Recommendations)
}

// handleListDatasets returns the loaded datasets and their row counts.
func (s *Server) handleListDatasets(c *gin.Context) {
	s.mu.RLock()
	rows := datasetRows(s.tables)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, rows)
}

// handleDataset returns the parsed rows of one dataset.
func (s *Server) handleDataset(c *gin.Context) {
	s.mu.RLock()
	tables := s.tables
	s.mu.RUnlock()

	datasets := map[string]interface{}{
		"pos_sales":            tables.Transactions,
		"menu":                 tables.Menu,
		"crm_loyalty":          tables.Customers,
		"inventory":            tables.Inventory,
		"hr_staff":             tables.Staff,
		"marketing_promotions": tables.Promotions,
		"reviews":              tables.Reviews,
		"reservations":         tables.Reservations,
		"finance_accounting":   tables.Finance,
	}

	name := c.Param("name")
	rows, ok := datasets[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown dataset: " + name})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// handleMetrics returns the monitoring snapshot.
func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

// handleRefresh reloads the datasets from disk and rebuilds the report.
func (s *Server) handleRefresh(c *gin.Context) {
	rep, err := s.refresh()
	if err != nil {
		s.log.WithError(err).Error("refresh failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "refreshed",
		"run_id":   rep.RunID,
		"warnings": len(rep.Warnings),
	})
}
