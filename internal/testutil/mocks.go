package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[int64]*domain.User
	ByUsername map[string]*domain.User
	nextID     int64
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[int64]*domain.User),
		ByUsername: make(map[string]*domain.User),
	}
}

// Create creates a new user, enforcing case-insensitive username uniqueness
func (m *MockUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	key := strings.ToLower(user.Username)
	if _, ok := m.ByUsername[key]; ok {
		return nil, domain.ErrDuplicateUsername
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.ByID[user.ID] = user
	m.ByUsername[key] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username, case-insensitively
func (m *MockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if user, ok := m.ByUsername[strings.ToLower(username)]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*domain.Category
	// HasExpensesFn overrides the in-use check; the default reports false.
	HasExpensesFn func(userID, id int64) (bool, error)
	nextID        int64
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int64]*domain.Category)}
}

// Create creates a new category, enforcing per-user case-insensitive name
// uniqueness
func (m *MockCategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && strings.EqualFold(existing.Name, category.Name) {
			return nil, domain.ErrDuplicateCategory
		}
	}
	m.nextID++
	category.ID = m.nextID
	category.CreatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category owned by the user
func (m *MockCategoryRepository) GetByID(_ context.Context, userID, id int64) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok && category.UserID == userID {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by name, case-insensitively
func (m *MockCategoryRepository) GetByName(_ context.Context, userID int64, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	for _, category := range m.Categories {
		if category.UserID == userID && strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByUser retrieves all of the user's categories ordered by name
func (m *MockCategoryRepository) GetAllByUser(_ context.Context, userID int64) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			out = append(out, category)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// CountByUser counts the user's categories
func (m *MockCategoryRepository) CountByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, category := range m.Categories {
		if category.UserID == userID {
			n++
		}
	}
	return n, nil
}

// UpdateBudgetType changes a category's budget bucket
func (m *MockCategoryRepository) UpdateBudgetType(_ context.Context, userID, id int64, budgetType domain.BudgetType) error {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	category.BudgetType = budgetType
	return nil
}

// Delete removes a category owned by the user
func (m *MockCategoryRepository) Delete(_ context.Context, userID, id int64) error {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// HasExpenses reports whether any expense references the category
func (m *MockCategoryRepository) HasExpenses(_ context.Context, userID, id int64) (bool, error) {
	if m.HasExpensesFn != nil {
		return m.HasExpensesFn(userID, id)
	}
	return false, nil
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Records map[int64]*domain.IncomeRecord
	nextID  int64
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{Records: make(map[int64]*domain.IncomeRecord)}
}

// Create creates a new income record
func (m *MockIncomeRepository) Create(_ context.Context, income *domain.IncomeRecord) (*domain.IncomeRecord, error) {
	m.nextID++
	income.ID = m.nextID
	income.CreatedAt = time.Now()
	m.Records[income.ID] = income
	return income, nil
}

// GetByID retrieves an income record owned by the user
func (m *MockIncomeRepository) GetByID(_ context.Context, userID, id int64) (*domain.IncomeRecord, error) {
	if record, ok := m.Records[id]; ok && record.UserID == userID {
		return record, nil
	}
	return nil, domain.ErrIncomeNotFound
}

// GetAllByUser retrieves the user's income, newest first
func (m *MockIncomeRepository) GetAllByUser(_ context.Context, userID int64, limit int) ([]*domain.IncomeRecord, error) {
	var out []*domain.IncomeRecord
	for _, record := range m.Records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes an income record owned by the user
func (m *MockIncomeRepository) Delete(_ context.Context, userID, id int64) error {
	if record, ok := m.Records[id]; ok && record.UserID == userID {
		delete(m.Records, id)
		return nil
	}
	return domain.ErrIncomeNotFound
}

// SumByDateRange totals income with occurred_at in [start, end)
func (m *MockIncomeRepository) SumByDateRange(_ context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, record := range m.Records {
		if record.UserID == userID && !record.OccurredAt.Before(start) && record.OccurredAt.Before(end) {
			total = total.Add(record.Amount)
		}
	}
	return total, nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository.
// Categories is consulted by SumByBucket to resolve budget buckets; it may
// be nil when bucket math is not under test.
type MockExpenseRepository struct {
	Records    map[int64]*domain.ExpenseRecord
	Categories *MockCategoryRepository
	nextID     int64
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository(categories *MockCategoryRepository) *MockExpenseRepository {
	return &MockExpenseRepository{
		Records:    make(map[int64]*domain.ExpenseRecord),
		Categories: categories,
	}
}

// Create creates a new expense record
func (m *MockExpenseRepository) Create(_ context.Context, expense *domain.ExpenseRecord) (*domain.ExpenseRecord, error) {
	m.nextID++
	expense.ID = m.nextID
	expense.CreatedAt = time.Now()
	m.Records[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense record owned by the user
func (m *MockExpenseRepository) GetByID(_ context.Context, userID, id int64) (*domain.ExpenseRecord, error) {
	if record, ok := m.Records[id]; ok && record.UserID == userID {
		return record, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAllByUser retrieves the user's expenses, newest first
func (m *MockExpenseRepository) GetAllByUser(_ context.Context, userID int64, limit int) ([]*domain.ExpenseRecord, error) {
	var out []*domain.ExpenseRecord
	for _, record := range m.Records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SpentAt.Equal(out[j].SpentAt) {
			return out[i].SpentAt.After(out[j].SpentAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes an expense record owned by the user
func (m *MockExpenseRepository) Delete(_ context.Context, userID, id int64) error {
	if record, ok := m.Records[id]; ok && record.UserID == userID {
		delete(m.Records, id)
		return nil
	}
	return domain.ErrExpenseNotFound
}

// SumByDateRange totals all expenses with spent_at in [start, end)
func (m *MockExpenseRepository) SumByDateRange(_ context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, record := range m.Records {
		if record.UserID == userID && !record.SpentAt.Before(start) && record.SpentAt.Before(end) {
			total = total.Add(record.Amount)
		}
	}
	return total, nil
}

// SumByBucket totals categorized expenses in [start, end) by budget bucket
func (m *MockExpenseRepository) SumByBucket(_ context.Context, userID int64, start, end time.Time) (map[domain.BudgetType]decimal.Decimal, error) {
	totals := make(map[domain.BudgetType]decimal.Decimal)
	for _, record := range m.Records {
		if record.UserID != userID || record.CategoryID == nil {
			continue
		}
		if record.SpentAt.Before(start) || !record.SpentAt.Before(end) {
			continue
		}
		if m.Categories == nil {
			continue
		}
		category, ok := m.Categories.Categories[*record.CategoryID]
		if !ok {
			continue
		}
		totals[category.BudgetType] = totals[category.BudgetType].Add(record.Amount)
	}
	return totals, nil
}

// MockRecurringTemplateRepository is a mock implementation of
// domain.RecurringTemplateRepository
type MockRecurringTemplateRepository struct {
	Templates map[int64]*domain.RecurringTemplate
	nextID    int64
}

// NewMockRecurringTemplateRepository creates a new MockRecurringTemplateRepository
func NewMockRecurringTemplateRepository() *MockRecurringTemplateRepository {
	return &MockRecurringTemplateRepository{Templates: make(map[int64]*domain.RecurringTemplate)}
}

// Create creates a new recurring template
func (m *MockRecurringTemplateRepository) Create(_ context.Context, template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	m.nextID++
	template.ID = m.nextID
	template.CreatedAt = time.Now()
	m.Templates[template.ID] = template
	return template, nil
}

// GetAllByUser retrieves all of the user's recurring templates
func (m *MockRecurringTemplateRepository) GetAllByUser(_ context.Context, userID int64) ([]*domain.RecurringTemplate, error) {
	var out []*domain.RecurringTemplate
	for _, template := range m.Templates {
		if template.UserID == userID {
			out = append(out, template)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountByUser counts the user's recurring templates
func (m *MockRecurringTemplateRepository) CountByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, template := range m.Templates {
		if template.UserID == userID {
			n++
		}
	}
	return n, nil
}

// Delete removes a recurring template owned by the user
func (m *MockRecurringTemplateRepository) Delete(_ context.Context, userID, id int64) error {
	if template, ok := m.Templates[id]; ok && template.UserID == userID {
		delete(m.Templates, id)
		return nil
	}
	return domain.ErrRecurringNotFound
}

// Exists reports whether the user already has a template with this category
// and description
func (m *MockRecurringTemplateRepository) Exists(_ context.Context, userID, categoryID int64, description string) (bool, error) {
	for _, template := range m.Templates {
		if template.UserID == userID && template.CategoryID == categoryID &&
			strings.EqualFold(template.Description, description) {
			return true, nil
		}
	}
	return false, nil
}

// MockFeedRepository is an in-memory implementation of domain.FeedRepository.
// It applies the same filter, ordering and cursor semantics as the SQL query
// so feed pagination can be exercised without a database.
type MockFeedRepository struct {
	Items []*domain.FeedItem
}

// NewMockFeedRepository creates a new MockFeedRepository
func NewMockFeedRepository() *MockFeedRepository {
	return &MockFeedRepository{}
}

// List returns up to q.Limit rows matching the query, ordered by the
// composite feed key and resuming strictly after the cursor position
func (m *MockFeedRepository) List(_ context.Context, _ int64, q *domain.FeedQuery) ([]*domain.FeedItem, error) {
	var matched []*domain.FeedItem
	for _, item := range m.Items {
		if !matchesFilters(item, q.Filters) {
			continue
		}
		if q.Cursor != nil && !q.Cursor.Precedes(item.Key()) {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Key().Compare(matched[j].Key(), q.Sort) < 0
	})
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func matchesFilters(item *domain.FeedItem, f domain.FeedFilters) bool {
	if f.Type != nil && item.Type() != *f.Type {
		return false
	}
	if f.CategoryID != nil {
		if item.CategoryID == nil || *item.CategoryID != *f.CategoryID {
			return false
		}
	}
	if f.Uncategorized {
		if item.TypeRank != domain.TypeRankExpense || item.CategoryID != nil {
			return false
		}
	}
	if f.From != nil && item.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && item.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// MockAtomicStore runs transactional functions directly against in-memory
// repositories. It provides atomic semantics only in the trivial sense that
// tests are single-threaded.
type MockAtomicStore struct {
	Categories *MockCategoryRepository
	Recurring  *MockRecurringTemplateRepository
}

// NewMockAtomicStore creates a new MockAtomicStore
func NewMockAtomicStore(categories *MockCategoryRepository, recurring *MockRecurringTemplateRepository) *MockAtomicStore {
	return &MockAtomicStore{Categories: categories, Recurring: recurring}
}

// WithinTx invokes fn against the store's repositories
func (m *MockAtomicStore) WithinTx(_ context.Context, fn func(repos domain.TemplateRepos) error) error {
	return fn(domain.TemplateRepos{Categories: m.Categories, Recurring: m.Recurring})
}
