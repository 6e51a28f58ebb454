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

const settlementColumns = "id, amount, date, paid_by, received_by, group_id, note, method, created_by"

func scanSettlement(row scanner) (models.Settlement, error) {
	var st models.Settlement
	var groupID sql.NullString
	err := row.Scan(
		&st.ID,
		&st.Amount,
		&st.Date,
		&st.PaidByUserID,
		&st.ReceivedByUserID,
		&groupID,
		&st.Note,
		&st.Method,
		&st.CreatedBy,
	)
	st.GroupID = groupID.String
	return st, err
}

// CreateSettlement persists a new settlement and its related-expense links.
func (s *Store) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date == 0 {
		settlement.Date = time.Now().UnixMilli()
	}
	if settlement.Method == "" {
		settlement.Method = models.MethodManual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.exec(ctx, tx,
		"INSERT INTO settlements ("+settlementColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		settlement.ID, settlement.Amount, settlement.Date, settlement.PaidByUserID,
		settlement.ReceivedByUserID, nullable(settlement.GroupID), settlement.Note,
		settlement.Method, settlement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range settlement.RelatedExpenseIDs {
		_, err = s.exec(ctx, tx,
			"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			settlement.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to link settlement to expense %s: %w", expenseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	st, err := scanSettlement(s.queryRow(ctx, s.db,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	settlements := []models.Settlement{st}
	if err := s.loadRelatedExpenses(ctx, settlements); err != nil {
		return nil, err
	}
	return &settlements[0], nil
}

// ListSettlements returns the settlements matching filter, newest first.
func (s *Store) ListSettlements(ctx context.Context, filter storage.SettlementFilter) ([]models.Settlement, error) {
	var where []string
	var args []any

	switch {
	case filter.GroupID != "":
		where = append(where, "group_id = ?")
		args = append(args, filter.GroupID)
	case filter.PersonalOnly:
		where = append(where, "group_id IS NULL")
	}
	if a, b := filter.Between[0], filter.Between[1]; a != "" && b != "" {
		where = append(where, "((paid_by = ? AND received_by = ?) OR (paid_by = ? AND received_by = ?))")
		args = append(args, a, b, b, a)
	}
	if filter.Involving != "" {
		where = append(where, "(paid_by = ? OR received_by = ?)")
		args = append(args, filter.Involving, filter.Involving)
	}

	query := "SELECT " + settlementColumns + " FROM settlements"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	var settlements []models.Settlement
	for rows.Next() {
		st, err := scanSettlement(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	if err := s.loadRelatedExpenses(ctx, settlements); err != nil {
		return nil, err
	}
	return settlements, nil
}

func (s *Store) loadRelatedExpenses(ctx context.Context, settlements []models.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	index := make(map[string]int, len(settlements))
	ids := make([]string, len(settlements))
	for i := range settlements {
		index[settlements[i].ID] = i
		ids[i] = settlements[i].ID
	}

	rows, err := s.query(ctx, s.db,
		"SELECT settlement_id, expense_id FROM settlement_expenses WHERE settlement_id IN ("+
			placeholders(len(ids))+") ORDER BY settlement_id, expense_id",
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to get settlement links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var settlementID, expenseID string
		if err := rows.Scan(&settlementID, &expenseID); err != nil {
			return fmt.Errorf("failed to scan settlement link: %w", err)
		}
		i := index[settlementID]
		settlements[i].RelatedExpenseIDs = append(settlements[i].RelatedExpenseIDs, expenseID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlement links: %w", err)
	}
	return nil
}
