package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ledger/internal/core"
)

var errNotArray = errors.New("ledger blob is not a JSON array")

// record is one stored element after field-level coercion.
type record struct {
	tx      core.Transaction
	idOK    bool
	changed bool
}

// encodeTransactions writes the blob layout {id, description, amount, type, date}.
func encodeTransactions(txs []core.Transaction) (string, error) {
	out := make([]core.Transaction, len(txs))
	for i, t := range txs {
		t.Amount = core.SafeAmount(t.Amount)
		out[i] = t
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	return string(b), nil
}

// decodeTransactions parses a stored blob into strictly typed records.
// Missing or malformed fields get defaults; migrated reports whether any
// record had to be changed (or dropped) to fit the strict shape.
func decodeTransactions(raw string, now time.Time, newID func(taken map[int64]bool) int64) (txs []core.Transaction, migrated bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false, errNotArray
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
		return nil, false, fmt.Errorf("decode ledger blob: %w", err)
	}

	records := make([]record, 0, len(elems))
	for _, elem := range elems {
		fields, ok := decodeObject(elem)
		if !ok {
			migrated = true
			continue
		}
		records = append(records, coerce(fields, now))
	}

	// First occurrence of a valid id keeps it; later duplicates and
	// missing ids are reassigned.
	taken := make(map[int64]bool, len(records))
	claimed := make(map[int64]bool, len(records))
	for _, r := range records {
		if r.idOK {
			taken[r.tx.ID] = true
		}
	}
	txs = make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if !r.idOK || claimed[r.tx.ID] {
			r.tx.ID = newID(taken)
			taken[r.tx.ID] = true
			r.changed = true
		}
		claimed[r.tx.ID] = true
		if r.changed {
			migrated = true
		}
		txs = append(txs, r.tx)
	}
	return txs, migrated, nil
}

func decodeObject(elem json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func coerce(fields map[string]any, now time.Time) record {
	var r record

	r.tx.ID, r.idOK = coerceID(fields["id"])

	switch d := fields["description"].(type) {
	case string:
		r.tx.Description = d
	default:
		r.changed = true
	}

	amount, ok := coerceNumber(fields["amount"])
	if !ok || amount < 0 {
		r.changed = true
	}
	r.tx.Amount = math.Abs(amount)

	switch typ, _ := fields["type"].(string); core.TransactionType(typ) {
	case core.Income:
		r.tx.Type = core.Income
	case core.Expense:
		r.tx.Type = core.Expense
	default:
		// anything that is not income has always counted as an expense
		r.tx.Type = core.Expense
		r.changed = true
	}

	date, ok := coerceDate(fields["date"])
	if !ok {
		date = core.NewTimestamp(now)
		r.changed = true
	}
	r.tx.Date = date

	return r
}

func coerceID(v any) (int64, bool) {
	switch id := v.(type) {
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n, true
		}
		if f, err := id.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// coerceNumber returns a finite float for numbers and numeric strings;
// everything else is zero and not ok.
func coerceNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceDate(v any) (core.Timestamp, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return core.Timestamp{}, false
	}
	ts, err := core.ParseTimestamp(s)
	if err != nil {
		return core.Timestamp{}, false
	}
	return ts, true
}
