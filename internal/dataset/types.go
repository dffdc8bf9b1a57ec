package dataset

// Transaction represents one point-of-sale ticket.
type Transaction struct {
	ID            string  `json:"id"`
	Server        string  `json:"server"`
	Time          string  `json:"time"`
	ItemsOrdered  string  `json:"items_ordered"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Tip           float64 `json:"tip"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
}

// MenuItem represents one catalog entry.
type MenuItem struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	EstimatedCOGS float64 `json:"estimated_cogs"`
	MarginPercent float64 `json:"margin_percent"`
}

// CustomerRecord represents one loyalty member.
type CustomerRecord struct {
	ID              string `json:"id"`
	TotalVisits     int    `json:"total_visits"`
	PreferredServer string `json:"preferred_server"`
	Allergies       string `json:"allergies"`
}

// IngredientStock represents one inventory row for the reporting period.
type IngredientStock struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	StartingQty   float64 `json:"starting_qty"`
	UsedToday     float64 `json:"used_today"`
	Wasted        float64 `json:"wasted"`
	EndingQty     float64 `json:"ending_qty"`
	UnitCost      float64 `json:"unit_cost"`
	TotalUsedCost float64 `json:"total_used_cost"`
}

// StaffMember represents one employee on the roster.
type StaffMember struct {
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	TotalTips       float64 `json:"total_tips"`
	TablesServed    string  `json:"tables_served"`
	AttendanceNotes string  `json:"attendance_notes"`
}

// Promotion represents one marketing code.
type Promotion struct {
	Code             string  `json:"code"`
	Description      string  `json:"description"`
	UsedByGuests     int     `json:"used_by_guests"`
	AvgSpendIncrease float64 `json:"avg_spend_increase"`
}

// Review represents one customer review.
type Review struct {
	ID              string `json:"id"`
	Rating          int    `json:"rating"`
	Sentiment       string `json:"sentiment"`
	ServerMentioned string `json:"server_mentioned"`
	RelatedMenuItem string `json:"related_menu_item"`
	Text            string `json:"text"`
}

// Reservation represents one booking.
type Reservation struct {
	ID             string `json:"id"`
	PartySize      int    `json:"party_size"`
	Status         string `json:"status"`
	Source         string `json:"source"`
	ServerAssigned string `json:"server_assigned"`
}

// FinancialMetric represents one named scalar from the finance table.
type FinancialMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Tables holds the nine loaded datasets for one analysis run.
// All tables are immutable after loading; aggregators only read them.
type Tables struct {
	Transactions []Transaction     `json:"transactions"`
	Menu         []MenuItem        `json:"menu"`
	Customers    []CustomerRecord  `json:"customers"`
	Inventory    []IngredientStock `json:"inventory"`
	Staff        []StaffMember     `json:"staff"`
	Promotions   []Promotion       `json:"promotions"`
	Reviews      []Review          `json:"reviews"`
	Reservations []Reservation     `json:"reservations"`
	Finance      []FinancialMetric `json:"finance"`
}
