package readstore

import (
	"context"
	"errors"

	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"
	"dicetrails/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

const selectOrderViewQuery = `
SELECT
	o.id, o.order_number, o.user_id, u.email, o.status,
	o.first_name, o.last_name, o.email, o.street, o.city, o.state, o.zipcode, o.country, o.phone,
	o.payment_method, o.region,
	o.subtotal, o.discount_kind, o.discount_amount, o.shipping_fee, o.total,
	o.voucher_code, o.tracking_number, o.placed_at, o.updated_at
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.id = $1`

const selectOrderLineViewsQuery = `
SELECT l.product_id, p.name, l.unit_price, l.discount_percent, l.quantity,
       ROUND(l.unit_price * (1 - l.discount_percent / 100.0) * l.quantity, 2) AS line_total
FROM order_lines l
JOIN products p ON p.id = l.product_id
WHERE l.order_id = $1
ORDER BY l.created_at, l.product_id`

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var view queries.OrderView
	err := r.db.QueryRow(ctx, selectOrderViewQuery, id).Scan(
		&view.ID, &view.OrderNumber, &view.UserID, &view.UserEmail, &view.Status,
		&view.FirstName, &view.LastName, &view.Email, &view.Street, &view.City, &view.State, &view.Zipcode, &view.Country, &view.Phone,
		&view.PaymentMethod, &view.Region,
		&view.Subtotal, &view.DiscountKind, &view.DiscountAmount, &view.ShippingFee, &view.Total,
		&view.VoucherCode, &view.TrackingNumber, &view.PlacedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	lines, err := r.findLineViews(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Lines = lines

	return &view, nil
}

func (r *OrderReadStore) findLineViews(ctx context.Context, orderID uuid.UUID) ([]queries.OrderLineView, error) {
	rows, err := r.db.Query(ctx, selectOrderLineViewsQuery, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order lines", err)
	}
	defer rows.Close()

	var lines []queries.OrderLineView
	for rows.Next() {
		var line queries.OrderLineView
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.UnitPrice, &line.DiscountPercent, &line.Quantity, &line.LineTotal); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}

	return lines, nil
}

const selectOrdersByUserQuery = `
SELECT id, order_number, status, region, total, placed_at
FROM orders
WHERE user_id = $1
ORDER BY placed_at DESC, id DESC
LIMIT $2`

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, selectOrdersByUserQuery, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders by user", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(&item.ID, &item.OrderNumber, &item.Status, &item.Region, &item.Total, &item.PlacedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}

	return items, nil
}

const selectAdjustmentsQuery = `
SELECT id, order_id, adjusted_by, reason,
       previous_discount, new_discount, previous_total, new_total,
       discount_kind_before, discount_kind_after, created_at
FROM order_adjustments
WHERE order_id = $1
ORDER BY created_at`

func (r *OrderReadStore) FindAdjustmentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*queries.AdjustmentView, error) {
	rows, err := r.db.Query(ctx, selectAdjustmentsQuery, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order adjustments", err)
	}
	defer rows.Close()

	var views []*queries.AdjustmentView
	for rows.Next() {
		var view queries.AdjustmentView
		if err := rows.Scan(
			&view.ID, &view.OrderID, &view.AdjustedBy, &view.Reason,
			&view.PreviousDiscount, &view.NewDiscount, &view.PreviousTotal, &view.NewTotal,
			&view.DiscountKindBefore, &view.DiscountKindAfter, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order adjustment", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order adjustments", err)
	}

	return views, nil
}
