package insights

import (
	"testing"
	"time"

	"ledger/internal/categorizer"
	"ledger/internal/core"
)

func tx(id int64, desc string, amount float64, typ core.TransactionType) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Type:        typ,
		Date:        core.NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestComputeNoExpenses(t *testing.T) {
	c := categorizer.Default()
	if _, ok := Compute(nil, c); ok {
		t.Fatalf("empty ledger must have no insights")
	}
	onlyIncome := []core.Transaction{tx(1, "Salary", 50000, core.Income)}
	if _, ok := Compute(onlyIncome, c); ok {
		t.Fatalf("income-only ledger must have no insights")
	}
}

func TestComputeLunchAndSalary(t *testing.T) {
	// newest first, as the ledger stores them
	txs := []core.Transaction{
		tx(2, "Salary", 50000, core.Income),
		tx(1, "Lunch", 250, core.Expense),
	}
	got, ok := Compute(txs, categorizer.Default())
	if !ok {
		t.Fatalf("expected insights")
	}
	if got.Biggest.Amount != 250 || got.Biggest.ID != 1 {
		t.Errorf("unexpected biggest %+v", got.Biggest)
	}
	if got.HighestCategory != core.Food || got.HighestAmount != 250 {
		t.Errorf("expected Food/250, got %s/%v", got.HighestCategory, got.HighestAmount)
	}
	if got.ExpenseCount != 1 {
		t.Errorf("expected 1 expense, got %d", got.ExpenseCount)
	}
}

func TestComputeBiggest(t *testing.T) {
	txs := []core.Transaction{
		tx(2, "Taxi", 500, core.Expense),
		tx(1, "Rent", 10000, core.Expense),
	}
	got, _ := Compute(txs, categorizer.Default())
	if got.Biggest.Description != "Rent" {
		t.Fatalf("expected Rent, got %+v", got.Biggest)
	}
	if got.HighestCategory != core.Bills || got.HighestAmount != 10000 {
		t.Fatalf("expected Bills/10000, got %s/%v", got.HighestCategory, got.HighestAmount)
	}
	if got.ExpenseCount != 2 {
		t.Fatalf("expected 2 expenses, got %d", got.ExpenseCount)
	}
}

func TestComputeBiggestTieKeepsFirst(t *testing.T) {
	txs := []core.Transaction{
		tx(3, "Coffee", 100, core.Expense),
		tx(2, "Bus", 100, core.Expense),
		tx(1, "Book", 40, core.Expense),
	}
	got, _ := Compute(txs, categorizer.Default())
	if got.Biggest.ID != 3 {
		t.Fatalf("expected first maximal record (id 3), got id %d", got.Biggest.ID)
	}
}

func TestComputeCategoryTieBreaksByName(t *testing.T) {
	txs := []core.Transaction{
		tx(3, "Taxi", 300, core.Expense),
		tx(2, "Pizza", 300, core.Expense),
		tx(1, "Gift", 100, core.Expense),
	}
	got, _ := Compute(txs, categorizer.Default())
	if got.HighestCategory != core.Food {
		t.Fatalf("expected Food to win the tie with Travel, got %s", got.HighestCategory)
	}
	want := []core.CategoryAmount{
		{Name: core.Food, Amount: 300},
		{Name: core.Travel, Amount: 300},
		{Name: core.Shopping, Amount: 100},
	}
	if len(got.ByCategory) != len(want) {
		t.Fatalf("unexpected breakdown %+v", got.ByCategory)
	}
	for i := range want {
		if got.ByCategory[i] != want[i] {
			t.Errorf("position %d expected %+v, got %+v", i, want[i], got.ByCategory[i])
		}
	}
}

func TestComputeSumsPerCategory(t *testing.T) {
	txs := []core.Transaction{
		tx(4, "Dinner", 800, core.Expense),
		tx(3, "Rent", 1000, core.Expense),
		tx(2, "Lunch", 300, core.Expense),
		tx(1, "Salary", 9000, core.Income),
	}
	got, _ := Compute(txs, categorizer.Default())
	if got.HighestCategory != core.Food || got.HighestAmount != 1100 {
		t.Fatalf("expected Food/1100, got %s/%v", got.HighestCategory, got.HighestAmount)
	}
	if got.Biggest.Description != "Rent" {
		t.Fatalf("expected Rent as biggest single expense, got %s", got.Biggest.Description)
	}
}
