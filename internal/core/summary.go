package core

// Summary holds the running totals of a ledger.
type Summary struct {
	Income  float64
	Expense float64
	Balance float64
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   Category
	Amount float64
}

// Insights are statistics derived from the expense records of a ledger.
type Insights struct {
	Biggest         Transaction // first expense with the maximal amount
	HighestCategory Category
	HighestAmount   float64
	ExpenseCount    int
	ByCategory      []CategoryAmount // sorted by amount desc, then name
}
