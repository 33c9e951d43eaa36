package repository

import (
	"context"
	"errors"
	"time"

	"dicetrails/internal/domain/order"
	"dicetrails/internal/domain/pricing"
	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const insertOrderQuery = `
INSERT INTO orders (
	id, user_id, status,
	first_name, last_name, email, street, city, state, zipcode, country, phone,
	payment_method, region,
	subtotal, discount_kind, discount_amount, shipping_fee, total,
	voucher_code, tracking_number, placed_at, updated_at
) VALUES (
	$1, $2, $3,
	$4, $5, $6, $7, $8, $9, $10, $11, $12,
	$13, $14,
	$15, $16, $17, $18, $19,
	$20, $21, $22, $23
)
RETURNING order_number`

const insertOrderLineQuery = `
INSERT INTO order_lines (order_id, product_id, unit_price, discount_percent, quantity)
VALUES ($1, $2, $3, $4, $5)`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (string, error) {
	addr := o.Address()
	totals := o.Totals()

	var orderNumber string
	err := tx.QueryRow(ctx, insertOrderQuery,
		o.ID(), o.UserID(), o.Status().String(),
		addr.FirstName, addr.LastName, addr.Email, addr.Street, addr.City, addr.State, addr.Zipcode, addr.Country, addr.Phone,
		string(o.PaymentMethod()), totals.Region.String(),
		totals.Subtotal, string(totals.DiscountKind), totals.DiscountAmount, totals.ShippingFee, totals.Total,
		o.VoucherCode(), o.TrackingNumber(), o.PlacedAt(), o.UpdatedAt(),
	).Scan(&orderNumber)
	if err != nil {
		return "", infra.WrapRepoErr("failed to insert order", err)
	}

	for _, line := range o.Lines() {
		if _, err := tx.Exec(ctx, insertOrderLineQuery,
			o.ID(), line.ProductID(), line.UnitPrice(), line.DiscountPercent(), line.Quantity(),
		); err != nil {
			return "", infra.WrapRepoErr("failed to insert order line", err)
		}
	}

	return orderNumber, nil
}

const selectOrderQuery = `
SELECT
	id, order_number, user_id, status,
	first_name, last_name, email, street, city, state, zipcode, country, phone,
	payment_method, region,
	subtotal, discount_kind, discount_amount, shipping_fee, total,
	voucher_code, tracking_number, placed_at, updated_at
FROM orders
WHERE id = $1`

const selectOrderLinesQuery = `
SELECT product_id, unit_price, discount_percent, quantity
FROM order_lines
WHERE order_id = $1
ORDER BY created_at, product_id`

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	var (
		orderID        uuid.UUID
		orderNumber    string
		userID         uuid.UUID
		status         string
		addr           order.Address
		paymentMethod  string
		region         string
		subtotal       decimal.Decimal
		discountKind   string
		discountAmount decimal.Decimal
		shippingFee    decimal.Decimal
		total          decimal.Decimal
		voucherCode    *string
		trackingNumber *string
		placedAt       time.Time
		updatedAt      time.Time
	)

	err := tx.QueryRow(ctx, selectOrderQuery, id).Scan(
		&orderID, &orderNumber, &userID, &status,
		&addr.FirstName, &addr.LastName, &addr.Email, &addr.Street, &addr.City, &addr.State, &addr.Zipcode, &addr.Country, &addr.Phone,
		&paymentMethod, &region,
		&subtotal, &discountKind, &discountAmount, &shippingFee, &total,
		&voucherCode, &trackingNumber, &placedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	lines, err := r.findLines(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	totals := pricing.OrderTotals{
		Subtotal:       subtotal,
		DiscountKind:   pricing.DiscountKind(discountKind),
		DiscountAmount: discountAmount,
		ShippingFee:    shippingFee,
		Region:         pricing.Region(region),
		Total:          total,
	}

	return order.ReconstructOrder(
		orderID, orderNumber, userID, lines, addr,
		order.PaymentMethod(paymentMethod), order.Status(status),
		totals, voucherCode, trackingNumber, placedAt, updatedAt,
	), nil
}

func (r *OrderRepository) findLines(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]pricing.CartLine, error) {
	rows, err := tx.Query(ctx, selectOrderLinesQuery, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order lines", err)
	}
	defer rows.Close()

	var lines []pricing.CartLine
	for rows.Next() {
		var (
			productID       uuid.UUID
			unitPrice       decimal.Decimal
			discountPercent int
			quantity        int
		)
		if err := rows.Scan(&productID, &unitPrice, &discountPercent, &quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		lines = append(lines, pricing.ReconstructCartLine(productID, unitPrice, discountPercent, quantity))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}

	return lines, nil
}

const updateOrderStatusQuery = `
UPDATE orders
SET status = $1,
    tracking_number = COALESCE($2, tracking_number),
    updated_at = $3
WHERE id = $4 AND status = $5`

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to order.Status, trackingNumber *string, now time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, updateOrderStatusQuery, to.String(), trackingNumber, now, id, from.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update order status", err)
	}
	return tag.RowsAffected() == 1, nil
}

const applyAdjustmentQuery = `
UPDATE orders
SET discount_kind = $1,
    voucher_code = $2,
    discount_amount = $3,
    shipping_fee = $4,
    total = $5,
    updated_at = $6
WHERE id = $7`

func (r *OrderRepository) ApplyAdjustment(ctx context.Context, tx db.DBTX, id uuid.UUID, discountKind string, voucherCode *string, discountAmount, shippingFee, total decimal.Decimal, now time.Time) error {
	tag, err := tx.Exec(ctx, applyAdjustmentQuery, discountKind, voucherCode, discountAmount, shippingFee, total, now, id)
	if err != nil {
		return infra.WrapRepoErr("failed to apply order adjustment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
