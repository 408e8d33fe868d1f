package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/pkg/listing"
)

// PostgresOrderRepository implements OrderRepository over database/sql
type PostgresOrderRepository struct {
	db *sql.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `o.id, o.order_number, o.customer_id, COALESCE(u.full_name, ''), o.status, o.total_amount, o.created_at, o.updated_at`

// filterClause builds the WHERE clause for a filter. Listing and counting
// share it so the page and the total can never disagree.
func filterClause(f domain.OrderFilter) (string, []interface{}) {
	clauses := []string{"1=1"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		p1 := arg(pattern)
		p2 := arg(pattern)
		clauses = append(clauses, fmt.Sprintf("(LOWER(o.order_number) LIKE %s OR LOWER(u.full_name) LIKE %s)", p1, p2))
	}
	if f.Status != "" {
		clauses = append(clauses, "o.status = "+arg(f.Status))
	}
	if f.CustomerID != nil {
		clauses = append(clauses, "o.customer_id = "+arg(*f.CustomerID))
	}
	if f.CreatedFrom != nil {
		clauses = append(clauses, "o.created_at >= "+arg(*f.CreatedFrom))
	}
	if f.CreatedTo != nil {
		clauses = append(clauses, "o.created_at <= "+arg(*f.CreatedTo))
	}

	return strings.Join(clauses, " AND "), args
}

// FindByID retrieves an order with its items
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE o.id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.CustomerName,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one page of orders matching the filter plus the total count
func (r *PostgresOrderRepository) List(ctx context.Context, filter domain.OrderFilter, page listing.Page, sort listing.Sort) ([]domain.Order, int64, error) {
	where, args := filterClause(filter)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM orders o
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// The sort column comes from a fixed allowlist, never from user input
	listQuery := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE %s
		ORDER BY o.%s
		LIMIT $%d OFFSET $%d
	`, where, sort.OrderClause(), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerID,
			&order.CustomerName,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

// UpdateStatus moves an order to a new status inside a transaction, locking
// the row so two concurrent changes cannot interleave.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if current == status {
		return nil, apperr.StateConflict("order %d is already %s", id, status)
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}
