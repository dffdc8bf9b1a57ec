package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brasserie/internal/dataset"
	"brasserie/internal/report"
)

var fixtureCSVs = map[string]string{
	dataset.FilePOSSales: "Transaction_ID,Server_Name,Time,Items_Ordered,Subtotal,Tax,Tip,Total,Payment_Method\n" +
		"TX-1,Sarah,12:30 PM,\"Burger (2), Fries\",29.00,2.03,5.00,36.03,Credit Card\n",
	dataset.FileMenu: "Item_Name,Menu_Category,Price,Estimated_COGS,Margin_Percent\n" +
		"Burger,Mains,12.50,4.00,68.0\nFries,Sides,4.00,1.00,75.0\n",
	dataset.FileCRM: "Customer_ID,Total_Visits,Preferred_Server,Allergies\n" +
		"C1,12,Sarah,None\n",
	dataset.FileInventory: "Ingredient_Name,Unit,Starting_Qty,Used_Today,Wasted,Ending_Qty,Unit_Cost,Total_Used_Cost\n" +
		"Beef,kg,10,7,1,2,8.00,56.00\n",
	dataset.FileStaff: "Name,Role,Total_Tips,Tables_Served,Attendance_Notes\n" +
		"Sarah,Server,120.00,T1,Excellent attendance\n",
	dataset.FileMarketing: "Promo_Code,Description,Used_By_Guests,Avg_Spend_Increase\n" +
		"BRUNCH10,10% off brunch,25,8.00\n",
	dataset.FileReviews: "Review_ID,Rating,Sentiment,Server_Mentioned,Related_Menu_Item,Review_Text\n" +
		"R1,5,Positive,Sarah,Burger,Amazing burger\n",
	dataset.FileReservations: "Reservation_ID,Party_Size,Status,Source,Server_Assigned\n" +
		"RES-1,2,Completed,Online,Sarah\n",
	dataset.FileFinance: "Metric,Value\nGross_Sales,12000\nTotal_COGS,3600\n" +
		"Labor_Cost,4200\nNet_Profit_Before_Tax,1800\n",
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtureCSVs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := fixtureDir(t)
	tables, err := dataset.Load(dir)
	require.NoError(t, err)
	rep, err := report.Run(tables, report.Options{TopN: 5})
	require.NoError(t, err)

	return NewServer(tables, rep, Options{DataDir: dir, TopN: 5})
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["analyst_available"])
	assert.NotEmpty(t, body["run_id"])
}

func TestReportEndpoint(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/api/report")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"sales", "menu", "loyalty", "inventory", "staff",
		"marketing", "reviews", "reservations", "finance", "ratios", "recommendations"} {
		assert.Contains(t, body, key)
	}
}

func TestReportDomainEndpoint(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/api/report/sales")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["total_orders"])
}

func TestReportDomainUnknown(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/api/report/astrology")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/api/recommendations")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["long_term"])
}

func TestDatasetEndpoints(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/api/datasets")
	require.Equal(t, http.StatusOK, w.Code)

	var rows map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Equal(t, 1, rows["pos_sales"])
	assert.Equal(t, 2, rows["menu"])

	w = doRequest(s, http.MethodGet, "/api/datasets/menu")
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Burger", items[0]["name"])

	w = doRequest(s, http.MethodGet, "/api/datasets/nonsense")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	s := testServer(t)
	before := s.currentReport().RunID

	w := doRequest(s, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "refreshed", body["status"])
	assert.NotEqual(t, before, s.currentReport().RunID)
}

func TestRefreshFailsOnBrokenData(t *testing.T) {
	s := testServer(t)
	require.NoError(t, os.Remove(filepath.Join(s.dataDir, dataset.FileFinance)))

	w := doRequest(s, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)
	doRequest(s, http.MethodPost, "/api/refresh")

	w := doRequest(s, http.MethodGet, "/api/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "uptime_seconds")
	assert.Contains(t, body, "last_run_duration_seconds")
}

func TestWebSocketUnavailableWithoutAnalyst(t *testing.T) {
	s := testServer(t)

	w := doRequest(s, http.MethodGet, "/ws")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
