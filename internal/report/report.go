// Package report assembles the full daily operations report by running every
// domain aggregator over the loaded tables.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"brasserie/internal/aggregate"
	"brasserie/internal/dataset"
	"brasserie/internal/menujoin"
	"brasserie/internal/orderline"
	"brasserie/internal/ratio"
	"brasserie/internal/recommend"
)

// Warning kinds carried on the report. Warnings record rows the run kept
// going past; fatal problems come back as errors instead.
const (
	WarnParse = "parse"
	WarnTime  = "time"
	WarnPrice = "price"
)

// Warning is one non-fatal data problem encountered during a run.
type Warning struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Options tunes a report run.
type Options struct {
	// TopN bounds ranked lists such as top waste and top promotions.
	// Zero means unbounded.
	TopN int
}

// Report is the assembled output of one analysis run. Two runs over the same
// tables differ only in RunID and GeneratedAt.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Sales           aggregate.SalesSummary       `json:"sales"`
	Menu            aggregate.MenuSummary        `json:"menu"`
	Loyalty         aggregate.LoyaltySummary     `json:"loyalty"`
	Inventory       aggregate.InventorySummary   `json:"inventory"`
	Staff           aggregate.StaffSummary       `json:"staff"`
	Marketing       aggregate.MarketingSummary   `json:"marketing"`
	Reviews         aggregate.ReviewSummary      `json:"reviews"`
	Reservations    aggregate.ReservationSummary `json:"reservations"`
	Finance         aggregate.FinanceSummary     `json:"finance"`
	Ratios          ratio.Ratios                 `json:"ratios"`
	Recommendations recommend.Recommendations    `json:"recommendations"`

	UnmatchedItems []string  `json:"unmatched_items,omitempty"`
	Warnings       []Warning `json:"warnings,omitempty"`
}

// Run executes the full pipeline over the loaded tables: order-line parsing,
// menu join, the nine domain aggregators, the ratio engine and the
// recommendation rules. Malformed order lines and unparseable transaction
// times become warnings; a failed finance extraction or a zeroed ratio
// denominator aborts the run.
func Run(tables *dataset.Tables, opts Options) (*Report, error) {
	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	var lines []orderline.Line
	for _, tx := range tables.Transactions {
		parsed, err := orderline.Parse(tx.ID, tx.ItemsOrdered)
		if err != nil {
			r.Warnings = append(r.Warnings, Warning{Kind: WarnParse, Detail: err.Error()})
			continue
		}
		lines = append(lines, parsed...)
	}

	for _, item := range tables.Menu {
		if item.Price < item.EstimatedCOGS {
			r.Warnings = append(r.Warnings, Warning{
				Kind:   WarnPrice,
				Detail: "menu item " + item.Name + " is priced below its estimated cost",
			})
		}
	}

	resolution := menujoin.Resolve(lines, tables.Menu)
	r.UnmatchedItems = resolution.Unmatched

	r.Sales = aggregate.Sales(tables.Transactions)
	for _, id := range r.Sales.UnparsedTimes {
		r.Warnings = append(r.Warnings, Warning{
			Kind:   WarnTime,
			Detail: "transaction " + id + " has an unparseable time and was skipped for the hourly histogram",
		})
	}

	r.Menu = aggregate.Menu(resolution)
	r.Loyalty = aggregate.Loyalty(tables.Customers)

	inventory, err := aggregate.Inventory(tables.Inventory, opts.TopN)
	if err != nil {
		return nil, err
	}
	r.Inventory = inventory

	r.Staff = aggregate.Staff(tables.Staff)
	r.Marketing = aggregate.Marketing(tables.Promotions, opts.TopN)
	r.Reviews = aggregate.Reviews(tables.Reviews, opts.TopN)
	r.Reservations = aggregate.Reservations(tables.Reservations)

	finance, err := aggregate.Finance(tables.Finance)
	if err != nil {
		return nil, err
	}
	r.Finance = finance

	ratios, err := ratio.Compute(finance.GrossSales, finance.TotalCOGS, finance.LaborCost, finance.NetProfit)
	if err != nil {
		return nil, err
	}
	r.Ratios = ratios

	r.Recommendations = recommend.Synthesize(recommend.Inputs{
		Sales:        r.Sales,
		Menu:         r.Menu,
		Loyalty:      r.Loyalty,
		Inventory:    r.Inventory,
		Staff:        r.Staff,
		Marketing:    r.Marketing,
		Reviews:      r.Reviews,
		Reservations: r.Reservations,
		Ratios:       r.Ratios,
	})

	sort.Slice(r.Warnings, func(i, j int) bool {
		if r.Warnings[i].Kind != r.Warnings[j].Kind {
			return r.Warnings[i].Kind < r.Warnings[j].Kind
		}
		return r.Warnings[i].Detail < r.Warnings[j].Detail
	})

	return r, nil
}
