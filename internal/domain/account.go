// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInactive indicates that the account has been deactivated.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrAccountNumberAlreadyExists indicates that the account number is already taken.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
	// ErrAccountAccessDenied indicates that the acting user does not own the account.
	ErrAccountAccessDenied = errors.New("account belongs to another user")
	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrVersionConflict indicates that the account was updated concurrently since it was read.
	ErrVersionConflict = errors.New("account version conflict")
)

// Category is the accounting category of an account.
//
// Customer-facing accounts are liabilities from the bank's perspective:
// the bank owes the customer, so a credit increases the balance and a
// debit decreases it. Every other category carries the opposite sign.
type Category string

// Supported account categories.
const (
	Asset     Category = "ASSET"
	Liability Category = "LIABILITY"
	Equity    Category = "EQUITY"
	Income    Category = "INCOME"
	Expense   Category = "EXPENSE"
)

// Categories holds all supported account categories.
var Categories = []Category{Asset, Liability, Equity, Income, Expense}

// IsSupportedCategory returns true if the category is supported.
func IsSupportedCategory(c string) bool {
	for _, v := range Categories {
		if string(v) == c {
			return true
		}
	}

	return false
}

// Account holds the balance snapshot for a single ledger account.
//
// Balance changes only through Debit and Credit, which return the
// updated value instead of mutating in place. Version implements
// optimistic concurrency: the store rejects updates carrying a stale
// version.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Category  Category        `json:"category"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	Version   int64           `json:"-"`
}

// NewAccount returns an active account with a zero balance.
func NewAccount(number string, ownerID uuid.UUID, category Category) Account {
	return Account{
		ID:        uuid.New(),
		Number:    number,
		OwnerID:   ownerID,
		Category:  category,
		Balance:   decimal.Zero,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// Debit applies a debit and returns the updated account.
//
// For LIABILITY accounts a debit decreases the balance and fails when
// the balance would go below zero. For all other categories a debit
// increases the balance with no floor check.
func (a Account) Debit(amount decimal.Decimal) (Account, error) {
	if !a.Active {
		return a, ErrAccountInactive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return a, ErrInvalidAmount
	}

	if a.Category == Liability {
		if a.Balance.LessThan(amount) {
			return a, ErrInsufficientBalance
		}

		a.Balance = a.Balance.Sub(amount)

		return a, nil
	}

	a.Balance = a.Balance.Add(amount)

	return a, nil
}

// Credit applies a credit and returns the updated account.
//
// Mirror of Debit: for LIABILITY accounts a credit increases the
// balance; for all other categories it decreases the balance and may go
// negative since those are bank-side legs.
func (a Account) Credit(amount decimal.Decimal) (Account, error) {
	if !a.Active {
		return a, ErrAccountInactive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return a, ErrInvalidAmount
	}

	if a.Category == Liability {
		a.Balance = a.Balance.Add(amount)

		return a, nil
	}

	a.Balance = a.Balance.Sub(amount)

	return a, nil
}
