package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage"
)

const expenseColumns = "id, description, amount, category, date, paid_by, split_type, group_id, created_by, created_at"

func scanExpense(row scanner) (models.Expense, error) {
	var e models.Expense
	var groupID sql.NullString
	err := row.Scan(
		&e.ID,
		&e.Description,
		&e.Amount,
		&e.Category,
		&e.Date,
		&e.PaidByUserID,
		&e.SplitType,
		&groupID,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	e.GroupID = groupID.String
	return e, err
}

// CreateExpense persists a new expense with its splits in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().UnixMilli()
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.exec(ctx, tx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount, expense.Category, expense.Date,
		expense.PaidByUserID, string(expense.SplitType), nullable(expense.GroupID),
		expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = s.exec(ctx, tx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, paid, position) VALUES (?, ?, ?, ?, ?)",
			expense.ID, split.UserID, split.Amount, split.Paid, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	e, err := scanExpense(s.queryRow(ctx, s.db,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expenses := []models.Expense{e}
	if err := s.loadSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// DeleteExpense deletes an expense and cascades to settlements that were made
// only against it.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := s.query(ctx, tx,
		"SELECT settlement_id FROM settlement_expenses WHERE expense_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to get linked settlements: %w", err)
	}
	var linked []string
	for rows.Next() {
		var settlementID string
		if err := rows.Scan(&settlementID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan settlement link: %w", err)
		}
		linked = append(linked, settlementID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlement links: %w", err)
	}

	// Splits and settlement links go with the expense.
	res, err := s.exec(ctx, tx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := affectedOne(res, "expense", id); err != nil {
		return err
	}

	for _, settlementID := range linked {
		_, err := s.exec(ctx, tx, `
			DELETE FROM settlements
			WHERE id = ? AND NOT EXISTS (
				SELECT 1 FROM settlement_expenses WHERE settlement_id = ?
			)
		`, settlementID, settlementID)
		if err != nil {
			return fmt.Errorf("failed to delete orphaned settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses returns the expenses matching filter, newest first.
func (s *Store) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]models.Expense, error) {
	var where []string
	var args []any

	switch {
	case filter.GroupID != "":
		where = append(where, "e.group_id = ?")
		args = append(args, filter.GroupID)
	case filter.PersonalOnly:
		where = append(where, "e.group_id IS NULL")
	}
	for _, userID := range filter.Involving {
		where = append(where, `(e.paid_by = ? OR EXISTS (
			SELECT 1 FROM expense_splits sp WHERE sp.expense_id = e.id AND sp.user_id = ?
		))`)
		args = append(args, userID, userID)
	}
	if filter.From != 0 {
		where = append(where, "e.date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != 0 {
		where = append(where, "e.date <= ?")
		args = append(args, filter.To)
	}

	query := "SELECT e." + strings.ReplaceAll(expenseColumns, ", ", ", e.") + " FROM expenses e"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.date DESC, e.created_at DESC, e.id"

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadSplits fills in the splits of every expense with a single query.
func (s *Store) loadSplits(ctx context.Context, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	index := make(map[string]int, len(expenses))
	ids := make([]string, len(expenses))
	for i := range expenses {
		index[expenses[i].ID] = i
		ids[i] = expenses[i].ID
	}

	rows, err := s.query(ctx, s.db,
		"SELECT expense_id, user_id, amount, paid FROM expense_splits WHERE expense_id IN ("+
			placeholders(len(ids))+") ORDER BY expense_id, position",
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var split models.Split
		if err := rows.Scan(&expenseID, &split.UserID, &split.Amount, &split.Paid); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		i := index[expenseID]
		expenses[i].Splits = append(expenses[i].Splits, split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}
