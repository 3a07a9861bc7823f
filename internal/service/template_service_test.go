package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/testutil"
)

func newTemplateFixture() (*TemplateService, *testutil.MockCategoryRepository, *testutil.MockRecurringTemplateRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	recurringRepo := testutil.NewMockRecurringTemplateRepository()
	store := testutil.NewMockAtomicStore(categoryRepo, recurringRepo)
	return NewTemplateService(categoryRepo, recurringRepo, store), categoryRepo, recurringRepo
}

func sampleDocument() *domain.TemplateDocument {
	return &domain.TemplateDocument{
		Version:    domain.TemplateDocumentVersion,
		DocumentID: "doc-1",
		Categories: []domain.TemplateCategory{
			{Name: "Rent", BudgetType: domain.BudgetTypeNecessities},
			{Name: "Streaming", BudgetType: domain.BudgetTypeLeisure},
		},
		Recurring: []domain.TemplateRecurring{
			{Description: "Monthly rent", Amount: "1200.00", Category: "Rent"},
			{Description: "Netflix", Amount: "15.99", Category: "Streaming"},
		},
	}
}

func TestImport_FreshAccount(t *testing.T) {
	templateService, _, _ := newTemplateFixture()

	result, err := templateService.Import(context.Background(), 1, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedCategories)
	assert.Equal(t, 2, result.InsertedRecurring)
	assert.Equal(t, 0, result.SkippedCategories)
	assert.Equal(t, 0, result.SkippedRecurring)
}

func TestImport_ReplayInsertsNothing(t *testing.T) {
	templateService, _, _ := newTemplateFixture()

	_, err := templateService.Import(context.Background(), 1, sampleDocument())
	require.NoError(t, err)

	result, err := templateService.Import(context.Background(), 1, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 0, result.InsertedCategories)
	assert.Equal(t, 0, result.InsertedRecurring)
	assert.Equal(t, 2, result.SkippedCategories)
	assert.Equal(t, 2, result.SkippedRecurring)
}

func TestImport_MatchesCategoriesCaseInsensitively(t *testing.T) {
	templateService, categoryRepo, _ := newTemplateFixture()
	_, err := categoryRepo.Create(context.Background(), &domain.Category{
		UserID: 1, Name: "rent", BudgetType: domain.BudgetTypeNecessities,
	})
	require.NoError(t, err)

	result, err := templateService.Import(context.Background(), 1, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 1, result.InsertedCategories)
	assert.Equal(t, 1, result.SkippedCategories)
}

func TestImport_UpdatesBudgetTypeOnExistingCategory(t *testing.T) {
	templateService, categoryRepo, _ := newTemplateFixture()
	existing, err := categoryRepo.Create(context.Background(), &domain.Category{
		UserID: 1, Name: "Rent", BudgetType: domain.BudgetTypeSavings,
	})
	require.NoError(t, err)

	result, err := templateService.Import(context.Background(), 1, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedCategories)
	updated, err := categoryRepo.GetByID(context.Background(), 1, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetTypeNecessities, updated.BudgetType)
}

func TestImport_RejectsUnknownRecurringCategory(t *testing.T) {
	templateService, _, _ := newTemplateFixture()
	doc := sampleDocument()
	doc.Recurring = append(doc.Recurring, domain.TemplateRecurring{
		Description: "Gym", Amount: "30.00", Category: "Fitness",
	})

	_, err := templateService.Import(context.Background(), 1, doc)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestImport_RejectsMalformedDocuments(t *testing.T) {
	templateService, _, _ := newTemplateFixture()

	tests := []struct {
		name   string
		mutate func(doc *domain.TemplateDocument)
	}{
		{"unsupported version", func(doc *domain.TemplateDocument) { doc.Version = 2 }},
		{"empty category name", func(doc *domain.TemplateDocument) { doc.Categories[0].Name = "  " }},
		{"invalid budget type", func(doc *domain.TemplateDocument) { doc.Categories[0].BudgetType = "luxuries" }},
		{"negative amount", func(doc *domain.TemplateDocument) { doc.Recurring[0].Amount = "-5.00" }},
		{"non-numeric amount", func(doc *domain.TemplateDocument) { doc.Recurring[0].Amount = "lots" }},
		{"missing recurring category", func(doc *domain.TemplateDocument) { doc.Recurring[0].Category = "" }},
		{"empty recurring description", func(doc *domain.TemplateDocument) { doc.Recurring[0].Description = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(doc)
			_, err := templateService.Import(context.Background(), 1, doc)
			assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
		})
	}
}

func TestImport_RejectsOversizedDocuments(t *testing.T) {
	templateService, _, _ := newTemplateFixture()

	doc := &domain.TemplateDocument{Version: domain.TemplateDocumentVersion}
	for i := 0; i <= domain.MaxImportCategories; i++ {
		doc.Categories = append(doc.Categories, domain.TemplateCategory{
			Name:       fmt.Sprintf("Category %d", i),
			BudgetType: domain.BudgetTypeNecessities,
		})
	}

	_, err := templateService.Import(context.Background(), 1, doc)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestImport_EnforcesCategoryCap(t *testing.T) {
	templateService, categoryRepo, _ := newTemplateFixture()
	for i := 0; i < domain.MaxCategoriesPerUser; i++ {
		_, err := categoryRepo.Create(context.Background(), &domain.Category{
			UserID: 1, Name: fmt.Sprintf("Existing %d", i), BudgetType: domain.BudgetTypeSavings,
		})
		require.NoError(t, err)
	}

	_, err := templateService.Import(context.Background(), 1, sampleDocument())
	assert.ErrorIs(t, err, domain.ErrCategoryLimit)
}

func TestImport_EnforcesRecurringCap(t *testing.T) {
	templateService, categoryRepo, recurringRepo := newTemplateFixture()
	category, err := categoryRepo.Create(context.Background(), &domain.Category{
		UserID: 1, Name: "Rent", BudgetType: domain.BudgetTypeNecessities,
	})
	require.NoError(t, err)
	for i := 0; i < domain.MaxRecurringPerUser; i++ {
		_, err := recurringRepo.Create(context.Background(), &domain.RecurringTemplate{
			UserID: 1, CategoryID: category.ID, Description: fmt.Sprintf("Existing %d", i),
		})
		require.NoError(t, err)
	}

	_, err = templateService.Import(context.Background(), 1, sampleDocument())
	assert.ErrorIs(t, err, domain.ErrRecurringLimit)
}

func TestExportImport_RoundTrip(t *testing.T) {
	exportService, categoryRepo, recurringRepo := newTemplateFixture()
	ctx := context.Background()

	category, err := categoryRepo.Create(ctx, &domain.Category{
		UserID: 1, Name: "Rent", BudgetType: domain.BudgetTypeNecessities,
	})
	require.NoError(t, err)
	_, err = recurringRepo.Create(ctx, &domain.RecurringTemplate{
		UserID: 1, CategoryID: category.ID, Description: "Monthly rent",
		Amount: decimal.RequireFromString("1200.00"),
	})
	require.NoError(t, err)

	doc, err := exportService.Export(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateDocumentVersion, doc.Version)
	assert.NotEmpty(t, doc.DocumentID)
	require.Len(t, doc.Categories, 1)
	require.Len(t, doc.Recurring, 1)
	assert.Equal(t, "1200.00", doc.Recurring[0].Amount)
	assert.Equal(t, "Rent", doc.Recurring[0].Category)

	// Importing into a second account reproduces the configuration.
	importService, importedCategories, importedRecurring := newTemplateFixture()
	result, err := importService.Import(ctx, 2, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, result.InsertedCategories)
	assert.Equal(t, 1, result.InsertedRecurring)

	categories, err := importedCategories.GetAllByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Rent", categories[0].Name)

	templates, err := importedRecurring.GetAllByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Monthly rent", templates[0].Description)
}
