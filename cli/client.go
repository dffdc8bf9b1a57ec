package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the analysis server
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("BRASSERIE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Report mirrors the server's report payload, limited to the fields the
// terminal views render.
type Report struct {
	RunID           string          `json:"run_id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Sales           SalesSummary    `json:"sales"`
	Menu            MenuSummary     `json:"menu"`
	Inventory       InventoryView   `json:"inventory"`
	Staff           StaffSummary    `json:"staff"`
	Ratios          Ratios          `json:"ratios"`
	Recommendations Recommendations `json:"recommendations"`
	Warnings        []Warning       `json:"warnings"`
}

// SalesSummary holds the sales figures shown on the dashboard.
type SalesSummary struct {
	TotalOrders    int           `json:"total_orders"`
	TotalRevenue   float64       `json:"total_revenue"`
	AvgTicket      float64       `json:"avg_ticket"`
	TotalTips      float64       `json:"total_tips"`
	TipRatePercent float64       `json:"tip_rate_percent"`
	Servers        []ServerSales `json:"servers"`
}

// ServerSales is one server row of the sales table.
type ServerSales struct {
	Server    string  `json:"server"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	AvgTicket float64 `json:"avg_ticket"`
	Tips      float64 `json:"tips"`
}

// MenuSummary holds the item rankings.
type MenuSummary struct {
	Popularity []ItemPopularity `json:"popularity"`
	Profits    []ItemProfit     `json:"profits"`
}

// ItemPopularity is one row of the popularity table.
type ItemPopularity struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Matched bool    `json:"matched"`
}

// ItemProfit is one row of the profit table.
type ItemProfit struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Profit float64 `json:"profit"`
}

// InventoryView holds the inventory rollup.
type InventoryView struct {
	TotalUsedCost  float64          `json:"total_used_cost"`
	TotalWasteCost float64          `json:"total_waste_cost"`
	WastePercent   float64          `json:"waste_percent"`
	TopWaste       []WasteRow       `json:"top_waste"`
	LowStock       []LowStockAlert  `json:"low_stock"`
}

// WasteRow is one row of the waste ranking.
type WasteRow struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Wasted    float64 `json:"wasted"`
	WasteCost float64 `json:"waste_cost"`
}

// LowStockAlert is one low-stock row.
type LowStockAlert struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	EndingQty  float64 `json:"ending_qty"`
	StockRatio float64 `json:"stock_ratio"`
}

// StaffSummary holds the roster rollup.
type StaffSummary struct {
	Servers    []ServerTips `json:"servers"`
	Highlights []string     `json:"highlights"`
}

// ServerTips is one row of the tips table.
type ServerTips struct {
	Name         string  `json:"name"`
	Tables       int     `json:"tables"`
	TotalTips    float64 `json:"total_tips"`
	TipsPerTable float64 `json:"tips_per_table"`
}

// Ratios holds the financial health flags.
type Ratios struct {
	FoodCostPercent     float64 `json:"food_cost_percent"`
	FoodCostFlag        string  `json:"food_cost_flag"`
	LaborCostPercent    float64 `json:"labor_cost_percent"`
	LaborCostFlag       string  `json:"labor_cost_flag"`
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
	ProfitMarginFlag    string  `json:"profit_margin_flag"`
}

// Recommendations holds the synthesized advice buckets.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// Warning is one non-fatal data problem from the latest run.
type Warning struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// RefreshResult is the response of a refresh request.
type RefreshResult struct {
	Status   string `json:"status"`
	RunID    string `json:"run_id"`
	Warnings int    `json:"warnings"`
}

// GetReport retrieves the latest assembled report
func (c *ApiClient) GetReport() (*Report, error) {
	if c.UseMock {
		return c.getMockReport(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/report")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get report with status code: %d", resp.StatusCode)
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Refresh asks the server to reload the datasets and rebuild the report
func (c *ApiClient) Refresh() (*RefreshResult, error) {
	if c.UseMock {
		return &RefreshResult{Status: "refreshed", RunID: "mock", Warnings: 0}, nil
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/refresh", bytes.NewBuffer(nil))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refresh failed with status code: %d", resp.StatusCode)
	}

	var result RefreshResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// getMockReport generates a plausible report for offline use
func (c *ApiClient) getMockReport() *Report {
	return &Report{
		RunID:       "mock",
		GeneratedAt: time.Now(),
		Sales: SalesSummary{
			TotalOrders:    42,
			TotalRevenue:   1874.20,
			AvgTicket:      44.62,
			TotalTips:      228.40,
			TipRatePercent: 13.8,
			Servers: []ServerSales{
				{Server: "Sarah", Orders: 18, Revenue: 842.10, AvgTicket: 46.78, Tips: 104.50},
				{Server: "Mike", Orders: 14, Revenue: 598.60, AvgTicket: 42.76, Tips: 71.90},
				{Server: "Ana", Orders: 10, Revenue: 433.50, AvgTicket: 43.35, Tips: 52.00},
			},
		},
		Menu: MenuSummary{
			Popularity: []ItemPopularity{
				{Name: "Burger", Count: 23, Revenue: 287.50, Matched: true},
				{Name: "Fries", Count: 19, Revenue: 76.00, Matched: true},
				{Name: "Caesar Salad", Count: 12, Revenue: 132.00, Matched: true},
			},
			Profits: []ItemProfit{
				{Name: "Burger", Count: 23, Profit: 195.50},
				{Name: "Caesar Salad", Count: 12, Profit: 96.00},
				{Name: "Fries", Count: 19, Profit: 57.00},
			},
		},
		Inventory: InventoryView{
			TotalUsedCost:  612.40,
			TotalWasteCost: 48.20,
			WastePercent:   7.3,
			TopWaste: []WasteRow{
				{Name: "Cream", Unit: "L", Wasted: 2.5, WasteCost: 18.75},
				{Name: "Lettuce", Unit: "kg", Wasted: 1.8, WasteCost: 9.00},
			},
			LowStock: []LowStockAlert{
				{Name: "Beef", Unit: "kg", EndingQty: 2, StockRatio: 0.2},
			},
		},
		Staff: StaffSummary{
			Servers: []ServerTips{
				{Name: "Sarah", Tables: 12, TotalTips: 104.50, TipsPerTable: 8.71},
				{Name: "Mike", Tables: 9, TotalTips: 71.90, TipsPerTable: 7.99},
			},
			Highlights: []string{"Sarah (Server): Excellent attendance"},
		},
		Ratios: Ratios{
			FoodCostPercent: 28.4, FoodCostFlag: "healthy",
			LaborCostPercent: 33.1, LaborCostFlag: "healthy",
			ProfitMarginPercent: 16.2, ProfitMarginFlag: "healthy",
		},
		Recommendations: Recommendations{
			Immediate: []string{"Reorder low-stock ingredients before the next service: Beef"},
			ShortTerm: []string{"Staff up for the 19:00 peak, the highest-revenue hour of the day"},
			LongTerm:  []string{"Keep running this report daily so week-over-week trends become visible"},
		},
	}
}
