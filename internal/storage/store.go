// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cashcrush/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseFilter narrows ListExpenses. Zero fields do not filter.
type ExpenseFilter struct {
	GroupID string
	// PersonalOnly restricts the result to expenses outside any group.
	// Ignored when GroupID is set.
	PersonalOnly bool
	// Involving restricts the result to expenses every listed user is
	// involved in, as payer or participant.
	Involving []string
	// From and To bound Date in Unix milliseconds, inclusive. Zero is unbounded.
	From int64
	To   int64
}

// SettlementFilter narrows ListSettlements. Zero fields do not filter.
type SettlementFilter struct {
	GroupID      string
	PersonalOnly bool
	// Between restricts the result to settlements between these two users,
	// in either direction.
	Between [2]string
	// Involving restricts the result to settlements the user paid or received.
	Involving string
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// EnsureUser returns the user with user.TokenIdentifier, creating it from
	// user when none exists. Profile fields of an existing user are kept.
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByToken(ctx context.Context, tokenIdentifier string) (*models.User, error)
	// GetUsers returns the users with the given IDs keyed by ID. Unknown IDs are skipped.
	GetUsers(ctx context.Context, ids []string) (map[string]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// SearchUsers matches name or email case-insensitively, excluding excludeID.
	SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]*models.User, error)

	// CreateExpense persists a new expense and its splits.
	// The expense.ID field will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	// DeleteExpense removes the expense, detaches it from every settlement and
	// deletes settlements left with no related expenses.
	DeleteExpense(ctx context.Context, id string) error
	// ListExpenses returns matching expenses, newest first.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error)

	// CreateSettlement persists a new settlement and its expense links.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, id string) (*models.Settlement, error)
	// ListSettlements returns matching settlements, newest first.
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]models.Settlement, error)

	// CreateGroup persists a new group with its members.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	// UpdateGroup updates name, description and image.
	UpdateGroup(ctx context.Context, group *models.Group) error
	// AddMember adds a membership. Adding an existing member is a no-op.
	AddMember(ctx context.Context, groupID string, member models.Member) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	// DeleteGroup removes the group with its expenses and settlements.
	DeleteGroup(ctx context.Context, id string) error
	// ListGroupsForUser returns the groups userID belongs to, newest first.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
