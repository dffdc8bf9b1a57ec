package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// File names of the nine required dataset sources.
const (
	FilePOSSales     = "pos_sales.csv"
	FileMenu         = "menu.csv"
	FileCRM          = "crm_loyalty.csv"
	FileInventory    = "inventory.csv"
	FileStaff        = "hr_staff.csv"
	FileMarketing    = "marketing_promotions.csv"
	FileReviews      = "reviews.csv"
	FileReservations = "reservations.csv"
	FileFinance      = "finance_accounting.csv"
)

// SourceFiles lists the nine required dataset files in load order.
var SourceFiles = []string{
	FilePOSSales,
	FileMenu,
	FileCRM,
	FileInventory,
	FileStaff,
	FileMarketing,
	FileReviews,
	FileReservations,
	FileFinance,
}

// Load reads the nine dataset files from dir into typed in-memory tables.
// It fails with a MissingSourceError when a file is absent, a SchemaError
// when a required column is absent, and a ValueError when a cell cannot be
// parsed. Unknown extra columns are ignored.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	var err error
	if t.Transactions, err = loadTransactions(dir); err != nil {
		return nil, err
	}
	if t.Menu, err = loadMenu(dir); err != nil {
		return nil, err
	}
	if t.Customers, err = loadCustomers(dir); err != nil {
		return nil, err
	}
	if t.Inventory, err = loadInventory(dir); err != nil {
		return nil, err
	}
	if t.Staff, err = loadStaff(dir); err != nil {
		return nil, err
	}
	if t.Promotions, err = loadPromotions(dir); err != nil {
		return nil, err
	}
	if t.Reviews, err = loadReviews(dir); err != nil {
		return nil, err
	}
	if t.Reservations, err = loadReservations(dir); err != nil {
		return nil, err
	}
	if t.Finance, err = loadFinance(dir); err != nil {
		return nil, err
	}

	return t, nil
}

// table is one parsed CSV file with named-column access.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

func readTable(dir, file string, required ...string) (*table, error) {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingSourceError{File: file}
		}
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{File: file, Columns: append([]string(nil), required...)}
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{File: file, Columns: missing}
	}

	return &table{file: file, cols: cols, rows: records[1:]}, nil
}

func (t *table) str(row int, col string) string {
	return strings.TrimSpace(t.rows[row][t.cols[col]])
}

func (t *table) float(row int, col string) (float64, error) {
	raw := t.str(row, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValueError{File: t.file, Row: row + 2, Column: col, Value: raw, Reason: "not a number"}
	}
	return v, nil
}

func (t *table) integer(row int, col string) (int, error) {
	raw := t.str(row, col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValueError{File: t.file, Row: row + 2, Column: col, Value: raw, Reason: "not an integer"}
	}
	return v, nil
}

func loadTransactions(dir string) ([]Transaction, error) {
	t, err := readTable(dir, FilePOSSales,
		"Transaction_ID", "Server_Name", "Time", "Items_Ordered",
		"Subtotal", "Tax", "Tip", "Total", "Payment_Method")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(t.rows))
	for i := range t.rows {
		tx := Transaction{
			ID:            t.str(i, "Transaction_ID"),
			Server:        t.str(i, "Server_Name"),
			Time:          t.str(i, "Time"),
			ItemsOrdered:  t.str(i, "Items_Ordered"),
			PaymentMethod: t.str(i, "Payment_Method"),
		}
		if tx.Subtotal, err = t.float(i, "Subtotal"); err != nil {
			return nil, err
		}
		if tx.Tax, err = t.float(i, "Tax"); err != nil {
			return nil, err
		}
		if tx.Tip, err = t.float(i, "Tip"); err != nil {
			return nil, err
		}
		if tx.Total, err = t.float(i, "Total"); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func loadMenu(dir string) ([]MenuItem, error) {
	t, err := readTable(dir, FileMenu,
		"Item_Name", "Menu_Category", "Price", "Estimated_COGS", "Margin_Percent")
	if err != nil {
		return nil, err
	}

	items := make([]MenuItem, 0, len(t.rows))
	for i := range t.rows {
		item := MenuItem{
			Name:     t.str(i, "Item_Name"),
			Category: t.str(i, "Menu_Category"),
		}
		if item.Price, err = t.float(i, "Price"); err != nil {
			return nil, err
		}
		if item.EstimatedCOGS, err = t.float(i, "Estimated_COGS"); err != nil {
			return nil, err
		}
		if item.MarginPercent, err = t.float(i, "Margin_Percent"); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func loadCustomers(dir string) ([]CustomerRecord, error) {
	t, err := readTable(dir, FileCRM,
		"Customer_ID", "Total_Visits", "Preferred_Server", "Allergies")
	if err != nil {
		return nil, err
	}

	customers := make([]CustomerRecord, 0, len(t.rows))
	for i := range t.rows {
		c := CustomerRecord{
			ID:              t.str(i, "Customer_ID"),
			PreferredServer: t.str(i, "Preferred_Server"),
			Allergies:       t.str(i, "Allergies"),
		}
		if c.TotalVisits, err = t.integer(i, "Total_Visits"); err != nil {
			return nil, err
		}
		if c.TotalVisits < 0 {
			return nil, &ValueError{
				File: t.file, Row: i + 2, Column: "Total_Visits",
				Value: t.str(i, "Total_Visits"), Reason: "visit count cannot be negative",
			}
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func loadInventory(dir string) ([]IngredientStock, error) {
	t, err := readTable(dir, FileInventory,
		"Ingredient_Name", "Unit", "Starting_Qty", "Used_Today",
		"Wasted", "Ending_Qty", "Unit_Cost", "Total_Used_Cost")
	if err != nil {
		return nil, err
	}

	stock := make([]IngredientStock, 0, len(t.rows))
	for i := range t.rows {
		s := IngredientStock{
			Name: t.str(i, "Ingredient_Name"),
			Unit: t.str(i, "Unit"),
		}
		if s.StartingQty, err = t.float(i, "Starting_Qty"); err != nil {
			return nil, err
		}
		if s.UsedToday, err = t.float(i, "Used_Today"); err != nil {
			return nil, err
		}
		if s.Wasted, err = t.float(i, "Wasted"); err != nil {
			return nil, err
		}
		if s.EndingQty, err = t.float(i, "Ending_Qty"); err != nil {
			return nil, err
		}
		if s.UnitCost, err = t.float(i, "Unit_Cost"); err != nil {
			return nil, err
		}
		if s.TotalUsedCost, err = t.float(i, "Total_Used_Cost"); err != nil {
			return nil, err
		}
		stock = append(stock, s)
	}
	return stock, nil
}

func loadStaff(dir string) ([]StaffMember, error) {
	t, err := readTable(dir, FileStaff,
		"Name", "Role", "Total_Tips", "Tables_Served", "Attendance_Notes")
	if err != nil {
		return nil, err
	}

	staff := make([]StaffMember, 0, len(t.rows))
	for i := range t.rows {
		m := StaffMember{
			Name:            t.str(i, "Name"),
			Role:            t.str(i, "Role"),
			TablesServed:    t.str(i, "Tables_Served"),
			AttendanceNotes: t.str(i, "Attendance_Notes"),
		}
		if m.TotalTips, err = t.float(i, "Total_Tips"); err != nil {
			return nil, err
		}
		staff = append(staff, m)
	}
	return staff, nil
}

func loadPromotions(dir string) ([]Promotion, error) {
	t, err := readTable(dir, FileMarketing,
		"Promo_Code", "Description", "Used_By_Guests", "Avg_Spend_Increase")
	if err != nil {
		return nil, err
	}

	promos := make([]Promotion, 0, len(t.rows))
	for i := range t.rows {
		p := Promotion{
			Code:        t.str(i, "Promo_Code"),
			Description: t.str(i, "Description"),
		}
		if p.UsedByGuests, err = t.integer(i, "Used_By_Guests"); err != nil {
			return nil, err
		}
		if p.AvgSpendIncrease, err = t.float(i, "Avg_Spend_Increase"); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, nil
}

func loadReviews(dir string) ([]Review, error) {
	t, err := readTable(dir, FileReviews,
		"Review_ID", "Rating", "Sentiment", "Server_Mentioned",
		"Related_Menu_Item", "Review_Text")
	if err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(t.rows))
	for i := range t.rows {
		r := Review{
			ID:              t.str(i, "Review_ID"),
			Sentiment:       t.str(i, "Sentiment"),
			ServerMentioned: t.str(i, "Server_Mentioned"),
			RelatedMenuItem: t.str(i, "Related_Menu_Item"),
			Text:            t.str(i, "Review_Text"),
		}
		if r.Rating, err = t.integer(i, "Rating"); err != nil {
			return nil, err
		}
		if r.Rating < 1 || r.Rating > 5 {
			return nil, &ValueError{
				File: t.file, Row: i + 2, Column: "Rating",
				Value: t.str(i, "Rating"), Reason: "rating must be between 1 and 5",
			}
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

func loadReservations(dir string) ([]Reservation, error) {
	t, err := readTable(dir, FileReservations,
		"Reservation_ID", "Party_Size", "Status", "Source", "Server_Assigned")
	if err != nil {
		return nil, err
	}

	reservations := make([]Reservation, 0, len(t.rows))
	for i := range t.rows {
		r := Reservation{
			ID:             t.str(i, "Reservation_ID"),
			Status:         t.str(i, "Status"),
			Source:         t.str(i, "Source"),
			ServerAssigned: t.str(i, "Server_Assigned"),
		}
		if r.PartySize, err = t.integer(i, "Party_Size"); err != nil {
			return nil, err
		}
		if r.PartySize < 1 {
			return nil, &ValueError{
				File: t.file, Row: i + 2, Column: "Party_Size",
				Value: t.str(i, "Party_Size"), Reason: "party size must be at least 1",
			}
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}

func loadFinance(dir string) ([]FinancialMetric, error) {
	t, err := readTable(dir, FileFinance, "Metric", "Value")
	if err != nil {
		return nil, err
	}

	metrics := make([]FinancialMetric, 0, len(t.rows))
	for i := range t.rows {
		m := FinancialMetric{Name: t.str(i, "Metric")}
		if m.Value, err = t.float(i, "Value"); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
