package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// TemplateService exports and imports a user's category and recurring
// template configuration as a versioned JSON document.
type TemplateService struct {
	categoryRepo  domain.CategoryRepository
	recurringRepo domain.RecurringTemplateRepository
	store         domain.AtomicStore
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(categoryRepo domain.CategoryRepository, recurringRepo domain.RecurringTemplateRepository, store domain.AtomicStore) *TemplateService {
	return &TemplateService{
		categoryRepo:  categoryRepo,
		recurringRepo: recurringRepo,
		store:         store,
	}
}

// Export builds the template document for a user. Recurring entries
// reference categories by name so the document imports cleanly into any
// account.
func (s *TemplateService) Export(ctx context.Context, userID int64) (*domain.TemplateDocument, error) {
	categories, err := s.categoryRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	templates, err := s.recurringRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &domain.TemplateDocument{
		Version:     domain.TemplateDocumentVersion,
		DocumentID:  uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Categories:  make([]domain.TemplateCategory, 0, len(categories)),
		Recurring:   make([]domain.TemplateRecurring, 0, len(templates)),
	}

	nameByID := make(map[int64]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
		doc.Categories = append(doc.Categories, domain.TemplateCategory{
			Name:       c.Name,
			BudgetType: c.BudgetType,
		})
	}
	for _, t := range templates {
		doc.Recurring = append(doc.Recurring, domain.TemplateRecurring{
			Description: t.Description,
			Amount:      t.Amount.StringFixed(2),
			Category:    nameByID[t.CategoryID],
		})
	}
	return doc, nil
}

// normalized import entries, validated up front so nothing touches the
// database unless the whole document is well-formed.
type importCategory struct {
	name       string
	budgetType domain.BudgetType
}

type importRecurring struct {
	description string
	amount      decimal.Decimal
	category    string
}

// Import applies a template document to the user's account: categories are
// upserted by case-insensitive name, recurring templates are inserted
// unless an equal one exists. The whole import is one transaction, and
// replaying the same document inserts nothing.
func (s *TemplateService) Import(ctx context.Context, userID int64, doc *domain.TemplateDocument) (*domain.ImportResult, error) {
	categories, recurring, err := validateTemplateDocument(doc)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{}
	err = s.store.WithinTx(ctx, func(repos domain.TemplateRepos) error {
		categoryCount, err := repos.Categories.CountByUser(ctx, userID)
		if err != nil {
			return err
		}

		for _, c := range categories {
			existing, err := repos.Categories.GetByName(ctx, userID, c.name)
			switch {
			case err == nil:
				if existing.BudgetType != c.budgetType {
					if err := repos.Categories.UpdateBudgetType(ctx, userID, existing.ID, c.budgetType); err != nil {
						return err
					}
				}
				result.SkippedCategories++
			case errors.Is(err, domain.ErrCategoryNotFound):
				if categoryCount >= domain.MaxCategoriesPerUser {
					return domain.ErrCategoryLimit
				}
				if _, err := repos.Categories.Create(ctx, &domain.Category{
					UserID:     userID,
					Name:       c.name,
					BudgetType: c.budgetType,
				}); err != nil {
					return err
				}
				categoryCount++
				result.InsertedCategories++
			default:
				return err
			}
		}

		recurringCount, err := repos.Recurring.CountByUser(ctx, userID)
		if err != nil {
			return err
		}

		for _, r := range recurring {
			category, err := repos.Categories.GetByName(ctx, userID, r.category)
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return fmt.Errorf("%w: recurring entry %q references unknown category %q",
					domain.ErrInvalidTemplate, r.description, r.category)
			}
			if err != nil {
				return err
			}

			exists, err := repos.Recurring.Exists(ctx, userID, category.ID, r.description)
			if err != nil {
				return err
			}
			if exists {
				result.SkippedRecurring++
				continue
			}

			if recurringCount >= domain.MaxRecurringPerUser {
				return domain.ErrRecurringLimit
			}
			if _, err := repos.Recurring.Create(ctx, &domain.RecurringTemplate{
				UserID:      userID,
				CategoryID:  category.ID,
				Description: r.description,
				Amount:      r.amount,
			}); err != nil {
				return err
			}
			recurringCount++
			result.InsertedRecurring++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateTemplateDocument(doc *domain.TemplateDocument) ([]importCategory, []importRecurring, error) {
	if doc.Version != domain.TemplateDocumentVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidTemplate, doc.Version)
	}
	if len(doc.Categories) > domain.MaxImportCategories {
		return nil, nil, fmt.Errorf("%w: at most %d categories per import", domain.ErrInvalidTemplate, domain.MaxImportCategories)
	}
	if len(doc.Recurring) > domain.MaxImportRecurring {
		return nil, nil, fmt.Errorf("%w: at most %d recurring entries per import", domain.ErrInvalidTemplate, domain.MaxImportRecurring)
	}

	categories := make([]importCategory, 0, len(doc.Categories))
	for i, c := range doc.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" || utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
			return nil, nil, fmt.Errorf("%w: categories[%d] has an invalid name", domain.ErrInvalidTemplate, i)
		}
		bt, err := domain.ParseBudgetType(string(c.BudgetType))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: categories[%d] has an invalid budget type", domain.ErrInvalidTemplate, i)
		}
		categories = append(categories, importCategory{name: name, budgetType: bt})
	}

	recurring := make([]importRecurring, 0, len(doc.Recurring))
	for i, r := range doc.Recurring {
		description := strings.TrimSpace(r.Description)
		if description == "" || len(description) > domain.MaxDescriptionLength {
			return nil, nil, fmt.Errorf("%w: recurring[%d] has an invalid description", domain.ErrInvalidTemplate, i)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil || domain.ValidateAmount(amount) != nil {
			return nil, nil, fmt.Errorf("%w: recurring[%d] has an invalid amount", domain.ErrInvalidTemplate, i)
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			return nil, nil, fmt.Errorf("%w: recurring[%d] is missing a category", domain.ErrInvalidTemplate, i)
		}
		recurring = append(recurring, importRecurring{description: description, amount: amount, category: category})
	}

	return categories, recurring, nil
}
