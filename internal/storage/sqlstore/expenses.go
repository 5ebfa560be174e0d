package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitapp/internal/models"
)

// CreateExpense inserts the expense and its split rows atomically.
// The group must exist.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Unix(expense.CreatedAt, 0)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, s.dialect.Rebind("SELECT 1 FROM groups WHERE id = ?"), expense.GroupID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("group", expense.GroupID)
		}
		if err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}

		_, err = s.exec(ctx, tx,
			`INSERT INTO expenses (id, group_id, amount, description, paid_by, spent_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.GroupID, expense.Amount.StringFixed(2), expense.Description,
			expense.PaidBy, expense.Date.Unix(), expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, name := range expense.SplitWith {
			_, err = s.exec(ctx, tx,
				"INSERT INTO expense_splits (expense_id, name, position) VALUES (?, ?, ?)",
				expense.ID, name, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
		return nil
	})
}

// ListExpensesByGroup returns the group's expenses with their split sets,
// oldest first.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT id, group_id, amount, description, paid_by, spent_at, created_at
		 FROM expenses WHERE group_id = ? ORDER BY spent_at, created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var date int64
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Amount, &e.Description, &e.PaidBy, &date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(date, 0).UTC()
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	splitRows, err := s.query(ctx, s.db,
		`SELECT es.expense_id, es.name FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE e.group_id = ?
		 ORDER BY es.expense_id, es.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, name string
		if err := splitRows.Scan(&expenseID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].SplitWith = append(expenses[i].SplitWith, name)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}

// ListMembersInExpenses returns every distinct payer or split member name.
func (s *Store) ListMembersInExpenses(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT paid_by AS name FROM expenses WHERE group_id = ?
		 UNION
		 SELECT es.name FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE e.group_id = ?
		 ORDER BY name`,
		groupID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members in expenses: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan member name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member names: %w", err)
	}
	return names, nil
}
