package aggregate

import (
	"math"
	"sort"

	"brasserie/internal/dataset"
)

// allergyNone is the sentinel used in the CRM export for customers with no
// recorded allergy.
const allergyNone = "None"

// VisitBand is one fixed band of the visit-count histogram. The bands
// partition the full customer set: [0-2], [3-5], [6-10], [11+].
type VisitBand struct {
	Label     string  `json:"label"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`
	Customers int     `json:"customers"`
	Percent   float64 `json:"percent"`
}

// ServerFollowing counts the customers who prefer one server.
type ServerFollowing struct {
	Server    string  `json:"server"`
	Customers int     `json:"customers"`
	Percent   float64 `json:"percent"`
}

// AllergyCount counts customers sharing one recorded allergy.
type AllergyCount struct {
	Allergy   string `json:"allergy"`
	Customers int    `json:"customers"`
}

// LoyaltySummary is the rollup of the CRM loyalty table.
type LoyaltySummary struct {
	TotalCustomers   int               `json:"total_customers"`
	AvgVisits        float64           `json:"avg_visits"`
	VisitBands       []VisitBand       `json:"visit_bands"`
	ServerFollowings []ServerFollowing `json:"server_followings"`
	Allergies        []AllergyCount    `json:"allergies"`
}

// Loyalty computes visit frequency, server preference and dietary rollups
// from the loyalty table. Customers whose allergy field is the "None"
// sentinel are excluded from the allergy frequency.
func Loyalty(customers []dataset.CustomerRecord) LoyaltySummary {
	l := LoyaltySummary{
		TotalCustomers: len(customers),
		VisitBands: []VisitBand{
			{Label: "1-2 visits", Min: 0, Max: 2},
			{Label: "3-5 visits", Min: 3, Max: 5},
			{Label: "6-10 visits", Min: 6, Max: 10},
			{Label: "11+ visits", Min: 11, Max: math.MaxInt},
		},
	}

	visitTotal := 0
	followings := make(map[string]int)
	allergies := make(map[string]int)

	for _, c := range customers {
		visitTotal += c.TotalVisits
		followings[c.PreferredServer]++
		if c.Allergies != "" && c.Allergies != allergyNone {
			allergies[c.Allergies]++
		}

		for i := range l.VisitBands {
			band := &l.VisitBands[i]
			if c.TotalVisits >= band.Min && c.TotalVisits <= band.Max {
				band.Customers++
				break
			}
		}
	}

	if l.TotalCustomers > 0 {
		l.AvgVisits = round1(float64(visitTotal) / float64(l.TotalCustomers))
	}
	for i := range l.VisitBands {
		l.VisitBands[i].Percent = percent(l.VisitBands[i].Customers, l.TotalCustomers)
	}

	l.ServerFollowings = make([]ServerFollowing, 0, len(followings))
	for server, count := range followings {
		l.ServerFollowings = append(l.ServerFollowings, ServerFollowing{
			Server:    server,
			Customers: count,
			Percent:   percent(count, l.TotalCustomers),
		})
	}
	sort.Slice(l.ServerFollowings, func(i, j int) bool {
		if l.ServerFollowings[i].Customers != l.ServerFollowings[j].Customers {
			return l.ServerFollowings[i].Customers > l.ServerFollowings[j].Customers
		}
		return l.ServerFollowings[i].Server < l.ServerFollowings[j].Server
	})

	l.Allergies = make([]AllergyCount, 0, len(allergies))
	for allergy, count := range allergies {
		l.Allergies = append(l.Allergies, AllergyCount{Allergy: allergy, Customers: count})
	}
	sort.Slice(l.Allergies, func(i, j int) bool {
		if l.Allergies[i].Customers != l.Allergies[j].Customers {
			return l.Allergies[i].Customers > l.Allergies[j].Customers
		}
		return l.Allergies[i].Allergy < l.Allergies[j].Allergy
	})

	return l
}

// LoyalCustomers returns the number of customers in the top visit band.
func (l LoyaltySummary) LoyalCustomers() int {
	for _, band := range l.VisitBands {
		if band.Label == "11+ visits" {
			return band.Customers
		}
	}
	return 0
}
