package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameLength      = errors.New("username must be between 3 and 32 characters")
	ErrPasswordLength      = errors.New("password must be at least 8 characters")
	ErrDuplicateUsername   = errors.New("username is already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategoryName = errors.New("category name must be between 1 and 40 characters")
	ErrInvalidDescription  = errors.New("description must be between 1 and 255 characters")
	ErrDuplicateCategory   = errors.New("a category with this name already exists")
	ErrCategoryInUse       = errors.New("category has expenses assigned to it")
	ErrCategoryLimit       = errors.New("category limit reached")
	ErrIncomeNotFound      = errors.New("income record not found")
	ErrExpenseNotFound     = errors.New("expense record not found")
	ErrRecurringNotFound   = errors.New("recurring template not found")
	ErrRecurringLimit      = errors.New("recurring template limit reached")
	ErrInvalidAmount       = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidBudgetType   = errors.New("budget type must be one of: necessities, leisure, savings")
	ErrInvalidCursor       = errors.New("invalid cursor")
	ErrIncompatibleFilters = errors.New("incompatible filters")
	ErrInvalidRange        = errors.New("invalid range")
	ErrInvalidTemplate     = errors.New("invalid template document")
)

// Validation constants
const (
	MaxCategoryNameLength = 40
	MaxCategoriesPerUser  = 50
	MaxRecurringPerUser   = 50
	MinUsernameLength     = 3
	MaxUsernameLength     = 32
	MinPasswordLength     = 8
	MaxSourceLength       = 255
	MaxDescriptionLength  = 255
)
