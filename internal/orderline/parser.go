// Package orderline parses the semi-structured "items ordered" text carried
// on each point-of-sale transaction into normalized (item, quantity) facts.
//
// The grammar is two productions over comma-separated entries:
//
//	entry = name                item with implicit quantity 1
//	entry = name " (" count ")" item with an explicit positive count
package orderline

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one normalized (item, quantity) fact derived from a transaction's
// raw item text.
type Line struct {
	Item          string `json:"item"`
	Quantity      int    `json:"quantity"`
	TransactionID string `json:"transaction_id"`
}

// ParseError identifies a malformed entry in a transaction's item text.
type ParseError struct {
	TransactionID string
	Input         string
	Reason        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("transaction %s: cannot parse item entry %q: %s", e.TransactionID, e.Input, e.Reason)
}

// Parse decomposes the raw item-list text of one transaction into an ordered
// sequence of Lines. An entry has an explicit quantity iff it contains a
// parenthesis; otherwise its quantity is 1. The first malformed entry aborts
// the whole transaction with a ParseError.
func Parse(transactionID, text string) ([]Line, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{TransactionID: transactionID, Input: text, Reason: "empty item list"}
	}

	entries := strings.Split(text, ",")
	lines := make([]Line, 0, len(entries))
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			return nil, &ParseError{TransactionID: transactionID, Input: raw, Reason: "empty entry"}
		}
		line, err := parseEntry(transactionID, entry)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// TotalQuantity sums the quantities of a parsed line sequence.
func TotalQuantity(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func parseEntry(transactionID, entry string) (Line, error) {
	open := strings.IndexByte(entry, '(')
	if open < 0 {
		if strings.IndexByte(entry, ')') >= 0 {
			return Line{}, &ParseError{TransactionID: transactionID, Input: entry, Reason: "unbalanced parentheses"}
		}
		return Line{Item: entry, Quantity: 1, TransactionID: transactionID}, nil
	}

	closing := strings.IndexByte(entry[open:], ')')
	if closing < 0 {
		return Line{}, &ParseError{TransactionID: transactionID, Input: entry, Reason: "unbalanced parentheses"}
	}
	closing += open

	name := strings.TrimSpace(entry[:open])
	if name == "" {
		return Line{}, &ParseError{TransactionID: transactionID, Input: entry, Reason: "missing item name"}
	}
	if rest := strings.TrimSpace(entry[closing+1:]); rest != "" {
		return Line{}, &ParseError{TransactionID: transactionID, Input: entry, Reason: "trailing text after quantity"}
	}

	count := strings.TrimSpace(entry[open+1 : closing])
	qty, err := strconv.Atoi(count)
	if err != nil {
		return Line{}, &ParseError{
			TransactionID: transactionID,
			Input:         entry,
			Reason:        fmt.Sprintf("quantity %q is not an integer", count),
		}
	}
	if qty < 1 {
		return Line{}, &ParseError{TransactionID: transactionID, Input: entry, Reason: "quantity must be positive"}
	}

	return Line{Item: name, Quantity: qty, TransactionID: transactionID}, nil
}
