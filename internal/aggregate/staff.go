package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"brasserie/internal/dataset"
)

// roleServer is the roster role whose tips-per-table ratio is tracked.
const roleServer = "Server"

// positiveKeywords mark attendance notes worth surfacing as highlights.
var positiveKeywords = []string{"excellent", "good"}

// ServerTips summarizes the tip performance of one server.
type ServerTips struct {
	Name         string  `json:"name"`
	Tables       int     `json:"tables"`
	TotalTips    float64 `json:"total_tips"`
	TipsPerTable float64 `json:"tips_per_table"`
}

// RoleSummary summarizes headcount and tips for one roster role.
type RoleSummary struct {
	Role      string  `json:"role"`
	Headcount int     `json:"headcount"`
	TotalTips float64 `json:"total_tips"`
}

// StaffSummary is the rollup of the staff roster.
type StaffSummary struct {
	Servers    []ServerTips  `json:"servers"`
	Roles      []RoleSummary `json:"roles"`
	Highlights []string      `json:"highlights,omitempty"`
}

// Staff computes per-server tip efficiency, per-role composition and
// qualitative highlights from the roster. A server with no assigned tables
// gets a tips-per-table of zero rather than a division by zero.
func Staff(staff []dataset.StaffMember) StaffSummary {
	s := StaffSummary{}

	roles := make(map[string]*RoleSummary)
	for _, m := range staff {
		r := roles[m.Role]
		if r == nil {
			r = &RoleSummary{Role: m.Role}
			roles[m.Role] = r
		}
		r.Headcount++
		r.TotalTips += m.TotalTips

		if m.Role == roleServer {
			tables := countTables(m.TablesServed)
			st := ServerTips{Name: m.Name, Tables: tables, TotalTips: round2(m.TotalTips)}
			if tables > 0 {
				st.TipsPerTable = round2(m.TotalTips / float64(tables))
			}
			s.Servers = append(s.Servers, st)
		}

		if note := strings.ToLower(m.AttendanceNotes); containsAny(note, positiveKeywords) {
			s.Highlights = append(s.Highlights, fmt.Sprintf("%s (%s): %s", m.Name, m.Role, m.AttendanceNotes))
		}
	}

	sort.Slice(s.Servers, func(i, j int) bool {
		if s.Servers[i].TotalTips != s.Servers[j].TotalTips {
			return s.Servers[i].TotalTips > s.Servers[j].TotalTips
		}
		return s.Servers[i].Name < s.Servers[j].Name
	})

	s.Roles = make([]RoleSummary, 0, len(roles))
	for _, r := range roles {
		r.TotalTips = round2(r.TotalTips)
		s.Roles = append(s.Roles, *r)
	}
	sort.Slice(s.Roles, func(i, j int) bool {
		if s.Roles[i].Headcount != s.Roles[j].Headcount {
			return s.Roles[i].Headcount > s.Roles[j].Headcount
		}
		return s.Roles[i].Role < s.Roles[j].Role
	})

	sort.Strings(s.Highlights)

	return s
}

func countTables(served string) int {
	count := 0
	for _, t := range strings.Split(served, ",") {
		if strings.TrimSpace(t) != "" {
			count++
		}
	}
	return count
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
