package aggregate

import (
	"sort"

	"brasserie/internal/dataset"
)

// StatusNoShow is the reservation status that feeds follow-up
// recommendations.
const StatusNoShow = "No-Show"

// StatusCount counts reservations sharing one status.
type StatusCount struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// PartySizeCount is one bucket of the party-size histogram.
type PartySizeCount struct {
	PartySize int `json:"party_size"`
	Count     int `json:"count"`
}

// SourceCount counts reservations arriving through one booking channel.
type SourceCount struct {
	Source  string  `json:"source"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ServerReservations counts reservations assigned to one server.
type ServerReservations struct {
	Server string `json:"server"`
	Count  int    `json:"count"`
}

// ReservationSummary is the rollup of the reservations table.
type ReservationSummary struct {
	TotalReservations int                  `json:"total_reservations"`
	AvgPartySize      float64              `json:"avg_party_size"`
	Statuses          []StatusCount        `json:"statuses"`
	PartySizes        []PartySizeCount     `json:"party_sizes"`
	Sources           []SourceCount        `json:"sources"`
	Servers           []ServerReservations `json:"servers"`
}

// NoShows returns the number of reservations with the no-show status.
func (r ReservationSummary) NoShows() int {
	for _, s := range r.Statuses {
		if s.Status == StatusNoShow {
			return s.Count
		}
	}
	return 0
}

// Reservations computes status, party-size, source and server-assignment
// rollups from the reservations table.
func Reservations(reservations []dataset.Reservation) ReservationSummary {
	r := ReservationSummary{TotalReservations: len(reservations)}

	statuses := make(map[string]int)
	partySizes := make(map[int]int)
	sources := make(map[string]int)
	servers := make(map[string]int)

	partyTotal := 0
	for _, rv := range reservations {
		statuses[rv.Status]++
		partySizes[rv.PartySize]++
		sources[rv.Source]++
		servers[rv.ServerAssigned]++
		partyTotal += rv.PartySize
	}

	if r.TotalReservations > 0 {
		r.AvgPartySize = round1(float64(partyTotal) / float64(r.TotalReservations))
	}

	r.Statuses = make([]StatusCount, 0, len(statuses))
	for status, count := range statuses {
		r.Statuses = append(r.Statuses, StatusCount{
			Status:  status,
			Count:   count,
			Percent: percent(count, r.TotalReservations),
		})
	}
	sort.Slice(r.Statuses, func(i, j int) bool {
		if r.Statuses[i].Count != r.Statuses[j].Count {
			return r.Statuses[i].Count > r.Statuses[j].Count
		}
		return r.Statuses[i].Status < r.Statuses[j].Status
	})

	r.PartySizes = make([]PartySizeCount, 0, len(partySizes))
	for size, count := range partySizes {
		r.PartySizes = append(r.PartySizes, PartySizeCount{PartySize: size, Count: count})
	}
	sort.Slice(r.PartySizes, func(i, j int) bool {
		return r.PartySizes[i].PartySize < r.PartySizes[j].PartySize
	})

	r.Sources = make([]SourceCount, 0, len(sources))
	for source, count := range sources {
		r.Sources = append(r.Sources, SourceCount{
			Source:  source,
			Count:   count,
			Percent: percent(count, r.TotalReservations),
		})
	}
	sort.Slice(r.Sources, func(i, j int) bool {
		if r.Sources[i].Count != r.Sources[j].Count {
			return r.Sources[i].Count > r.Sources[j].Count
		}
		return r.Sources[i].Source < r.Sources[j].Source
	})

	r.Servers = make([]ServerReservations, 0, len(servers))
	for server, count := range servers {
		r.Servers = append(r.Servers, ServerReservations{Server: server, Count: count})
	}
	sort.Slice(r.Servers, func(i, j int) bool {
		if r.Servers[i].Count != r.Servers[j].Count {
			return r.Servers[i].Count > r.Servers[j].Count
		}
		return r.Servers[i].Server < r.Servers[j].Server
	})

	return r
}
