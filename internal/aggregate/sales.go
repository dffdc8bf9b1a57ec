package aggregate

import (
	"sort"
	"time"

	"brasserie/internal/dataset"
)

// timeOfDayLayout matches the 12-hour clock carried on POS transactions,
// e.g. "12:30 PM".
const timeOfDayLayout = "3:04 PM"

// PaymentBreakdown summarizes orders and revenue for one payment method.
type PaymentBreakdown struct {
	Method  string  `json:"method"`
	Orders  int     `json:"orders"`
	Percent float64 `json:"percent"`
	Revenue float64 `json:"revenue"`
}

// ServerSales summarizes the transactions rung up by one server.
type ServerSales struct {
	Server    string  `json:"server"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	AvgTicket float64 `json:"avg_ticket"`
	Tips      float64 `json:"tips"`
}

// HourRevenue is one bucket of the hour-of-day revenue histogram.
type HourRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// SalesSummary is the rollup of the POS transaction table.
type SalesSummary struct {
	TotalOrders    int                `json:"total_orders"`
	TotalRevenue   float64            `json:"total_revenue"`
	AvgTicket      float64            `json:"avg_ticket"`
	TotalTips      float64            `json:"total_tips"`
	TipRatePercent float64            `json:"tip_rate_percent"`
	Payments       []PaymentBreakdown `json:"payments"`
	Servers        []ServerSales      `json:"servers"`
	HourlyRevenue  []HourRevenue      `json:"hourly_revenue"`
	UnparsedTimes  []string           `json:"unparsed_times,omitempty"`
}

// PeakHour returns the hour with the highest revenue and whether the
// histogram has any buckets at all.
func (s SalesSummary) PeakHour() (int, bool) {
	if len(s.HourlyRevenue) == 0 {
		return 0, false
	}
	peak := s.HourlyRevenue[0]
	for _, h := range s.HourlyRevenue[1:] {
		if h.Revenue > peak.Revenue {
			peak = h
		}
	}
	return peak.Hour, true
}

// Sales computes order, revenue, tip, payment-method, per-server and
// hour-of-day rollups from the transaction table. Transactions whose
// time-of-day field cannot be parsed are skipped for the hour histogram only
// and reported in UnparsedTimes.
func Sales(txs []dataset.Transaction) SalesSummary {
	s := SalesSummary{TotalOrders: len(txs)}

	var subtotal float64
	payments := make(map[string]*PaymentBreakdown)
	servers := make(map[string]*ServerSales)
	hours := make(map[int]float64)

	for _, tx := range txs {
		s.TotalRevenue += tx.Total
		s.TotalTips += tx.Tip
		subtotal += tx.Subtotal

		p := payments[tx.PaymentMethod]
		if p == nil {
			p = &PaymentBreakdown{Method: tx.PaymentMethod}
			payments[tx.PaymentMethod] = p
		}
		p.Orders++
		p.Revenue += tx.Total

		sv := servers[tx.Server]
		if sv == nil {
			sv = &ServerSales{Server: tx.Server}
			servers[tx.Server] = sv
		}
		sv.Orders++
		sv.Revenue += tx.Total
		sv.Tips += tx.Tip

		if parsed, err := time.Parse(timeOfDayLayout, tx.Time); err != nil {
			s.UnparsedTimes = append(s.UnparsedTimes, tx.ID)
		} else {
			hours[parsed.Hour()] += tx.Total
		}
	}

	s.TotalRevenue = round2(s.TotalRevenue)
	s.TotalTips = round2(s.TotalTips)
	if s.TotalOrders > 0 {
		s.AvgTicket = round2(s.TotalRevenue / float64(s.TotalOrders))
	}
	if subtotal > 0 {
		s.TipRatePercent = round1(s.TotalTips / subtotal * 100)
	}

	s.Payments = make([]PaymentBreakdown, 0, len(payments))
	for _, p := range payments {
		p.Revenue = round2(p.Revenue)
		p.Percent = percent(p.Orders, s.TotalOrders)
		s.Payments = append(s.Payments, *p)
	}
	sort.Slice(s.Payments, func(i, j int) bool {
		if s.Payments[i].Orders != s.Payments[j].Orders {
			return s.Payments[i].Orders > s.Payments[j].Orders
		}
		return s.Payments[i].Method < s.Payments[j].Method
	})

	s.Servers = make([]ServerSales, 0, len(servers))
	for _, sv := range servers {
		sv.Revenue = round2(sv.Revenue)
		sv.Tips = round2(sv.Tips)
		sv.AvgTicket = round2(sv.Revenue / float64(sv.Orders))
		s.Servers = append(s.Servers, *sv)
	}
	sort.Slice(s.Servers, func(i, j int) bool {
		if s.Servers[i].Revenue != s.Servers[j].Revenue {
			return s.Servers[i].Revenue > s.Servers[j].Revenue
		}
		return s.Servers[i].Server < s.Servers[j].Server
	})

	s.HourlyRevenue = make([]HourRevenue, 0, len(hours))
	for hour, revenue := range hours {
		s.HourlyRevenue = append(s.HourlyRevenue, HourRevenue{Hour: hour, Revenue: round2(revenue)})
	}
	sort.Slice(s.HourlyRevenue, func(i, j int) bool {
		return s.HourlyRevenue[i].Hour < s.HourlyRevenue[j].Hour
	})
	sort.Strings(s.UnparsedTimes)

	return s
}
