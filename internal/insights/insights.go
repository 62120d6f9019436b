// Package insights derives expense statistics from a list of transactions.
package insights

import (
	"sort"

	"ledger/internal/categorizer"
	"ledger/internal/core"
)

// Compute returns insights over the expense records of txs, or false when
// there are none. txs is expected newest first; the biggest expense is the
// first maximal one in that order. Equal category totals are ordered by
// category name so the highest category is deterministic.
func Compute(txs []core.Transaction, classifier categorizer.Classifier) (core.Insights, bool) {
	var (
		out     core.Insights
		totals  = make(map[core.Category]float64)
		found   bool
		biggest core.Transaction
	)
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		amount := core.SafeAmount(t.Amount)
		if !found || amount > core.SafeAmount(biggest.Amount) {
			biggest = t
		}
		found = true
		out.ExpenseCount++
		totals[classifier.Categorize(t.Description)] += amount
	}
	if !found {
		return core.Insights{}, false
	}

	out.Biggest = biggest
	out.ByCategory = rank(totals)
	out.HighestCategory = out.ByCategory[0].Name
	out.HighestAmount = out.ByCategory[0].Amount
	return out, true
}

func rank(totals map[core.Category]float64) []core.CategoryAmount {
	ranked := make([]core.CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		ranked = append(ranked, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
