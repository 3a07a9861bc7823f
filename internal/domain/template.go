package domain

import (
	"context"
	"time"
)

// Template document limits. The import path rejects anything larger
// before touching the database.
const (
	TemplateDocumentVersion = 1
	MaxImportPayloadBytes   = 1 << 20
	MaxImportCategories     = 100
	MaxImportRecurring      = 200
)

// TemplateDocument is the versioned export/import format for a user's
// category and recurring-template configuration. Recurring entries
// reference categories by name so documents stay portable across accounts.
type TemplateDocument struct {
	Version     int                 `json:"version"`
	DocumentID  string              `json:"documentId"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Categories  []TemplateCategory  `json:"categories"`
	Recurring   []TemplateRecurring `json:"recurring"`
}

type TemplateCategory struct {
	Name       string     `json:"name"`
	BudgetType BudgetType `json:"budgetType"`
}

type TemplateRecurring struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

// TemplateRepos are the repositories an import writes through. Inside
// WithinTx they share one transaction.
type TemplateRepos struct {
	Categories CategoryRepository
	Recurring  RecurringTemplateRepository
}

// AtomicStore runs a multi-row write as one atomic unit: either every
// insert in fn commits or none do, with no partial state visible to
// concurrent readers.
type AtomicStore interface {
	WithinTx(ctx context.Context, fn func(repos TemplateRepos) error) error
}

// ImportResult reports what an import actually wrote. Replaying the same
// document yields all-zero inserted counts.
type ImportResult struct {
	InsertedCategories int
	InsertedRecurring  int
	SkippedCategories  int
	SkippedRecurring   int
}
