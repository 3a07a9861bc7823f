package domain

import "github.com/shopspring/decimal"

// BucketShares are the 50/30/20 allocations of total income.
var BucketShares = map[BudgetType]decimal.Decimal{
	BudgetTypeNecessities: decimal.NewFromFloat(0.5),
	BudgetTypeLeisure:     decimal.NewFromFloat(0.3),
	BudgetTypeSavings:     decimal.NewFromFloat(0.2),
}

// BucketSummary is one bucket's budget line for the current month.
// Remaining goes negative on overspend; that is a signal, not an error.
type BucketSummary struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

type DashboardSummary struct {
	Month          string
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Buckets        map[BudgetType]BucketSummary
	RecentActivity []*FeedItem
}
