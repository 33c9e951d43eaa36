package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"dicetrails/internal/domain/order"
	"dicetrails/internal/domain/pricing"
	"dicetrails/internal/domain/product"
	reqdto "dicetrails/internal/handler/dto/request"
	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"
	"dicetrails/internal/pkg/clock"
	"dicetrails/internal/pkg/errs"
	"dicetrails/internal/usecase/queries"
	"dicetrails/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOrderNotFound           = errs.New("order not found")
	ErrOrderForbidden          = errs.New("order does not belong to user")
	ErrProductNotFound         = errs.New("product not found")
	ErrVoucherInvalid          = errs.New("invalid voucher")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrNewsletterDiscountUsed  = errs.New("newsletter discount already used")
	ErrStatusConflict          = errs.New("order status changed concurrently")
	ErrDuplicateOrder          = errs.New("duplicate order")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type PlaceOrderResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, req reqdto.PlaceOrderRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, trackingNumber *string) error
	Cancel(ctx context.Context, orderID, userID uuid.UUID) error
	Adjust(ctx context.Context, orderID, adminID uuid.UUID, req reqdto.AdjustOrderRequest) (*queries.AdjustmentView, error)
}

type orderUseCaseImpl struct {
	orderRepo       OrderRepository
	userRepo        UserRepository
	voucherRepo     VoucherRepository
	productRepo     ProductRepository
	idempotencyRepo IdempotencyRepository
	adjustmentRepo  AdjustmentRepository
	orderQueries    queries.OrderQueries
	pool            *pgxpool.Pool
	clock           clock.Clock
}

func NewOrderUseCase(
	orderRepo OrderRepository,
	userRepo UserRepository,
	voucherRepo VoucherRepository,
	productRepo ProductRepository,
	idempotencyRepo IdempotencyRepository,
	adjustmentRepo AdjustmentRepository,
	orderQueries queries.OrderQueries,
	pool *pgxpool.Pool,
	clock clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		voucherRepo:     voucherRepo,
		productRepo:     productRepo,
		idempotencyRepo: idempotencyRepo,
		adjustmentRepo:  adjustmentRepo,
		orderQueries:    orderQueries,
		pool:            pool,
		clock:           clock,
	}
}

func (u *orderUseCaseImpl) PlaceOrder(
	ctx context.Context,
	req reqdto.PlaceOrderRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*PlaceOrderResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := u.clock.Now().Add(24 * time.Hour)

	existing, err := u.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PlaceOrderResult{Order: existing, IsReplayed: true}, nil
	}

	draft, err := u.buildDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	selection, consumeNewsletter, err := u.resolveDiscount(ctx, userID, req.GetVoucherCode())
	if err != nil {
		return nil, err
	}

	orderEntity, err := order.NewOrder(u.clock.Now(), userID, draft, selection)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	orderID, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (uuid.UUID, error) {
		if _, err := u.orderRepo.Create(ctx, tx, orderEntity); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, line := range orderEntity.Lines() {
			ok, err := u.productRepo.DecrementStock(ctx, tx, line.ProductID(), int32(line.Quantity()))
			if err != nil {
				return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !ok {
				return uuid.Nil, ErrInsufficientStock
			}
		}

		if consumeNewsletter {
			ok, err := u.userRepo.ConsumeNewsletterDiscount(ctx, tx, userID)
			if err != nil {
				return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !ok {
				return uuid.Nil, ErrNewsletterDiscountUsed
			}
		}

		responseHash := calculateIDHash(orderEntity.ID())
		if err := u.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, responseHash, orderEntity.ID()); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return orderEntity.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: serve the full view from the read store
	view, err := u.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &PlaceOrderResult{Order: view, IsReplayed: false}, nil
}

func (u *orderUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.OrderView, error) {
	inserted, err := u.idempotencyRepo.TryInsert(ctx, idempotencyKey, userID, "POST /orders", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		// First request for this key; proceed with placement.
		return nil, nil
	}

	existing, err := u.idempotencyRepo.Get(ctx, idempotencyKey, userID)
	if err != nil {
		// The conflicting row expired between the claim attempt and the read;
		// the key is effectively fresh.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultOrderID != nil {
			// System-level access for idempotent replay
			return u.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)
		}
		return nil, errs.New("completed request missing result order ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateOrder
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (u *orderUseCaseImpl) buildDraft(ctx context.Context, req reqdto.PlaceOrderRequest) (order.Draft, error) {
	region, err := pricing.NewRegion(req.Region)
	if err != nil {
		return order.Draft{}, errs.Mark(err, ErrDomainValidation)
	}

	paymentMethod, err := order.NewPaymentMethod(req.PaymentMethod)
	if err != nil {
		return order.Draft{}, errs.Mark(err, ErrDomainValidation)
	}

	lines, err := u.buildLines(ctx, req.Items)
	if err != nil {
		return order.Draft{}, err
	}

	return order.Draft{
		Lines: lines,
		Address: order.Address{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Street:    req.Street,
			City:      req.City,
			State:     req.State,
			Zipcode:   req.Zipcode,
			Country:   req.Country,
			Phone:     req.Phone,
		},
		PaymentMethod: paymentMethod,
		Region:        region,
	}, nil
}

// buildLines snapshots catalog price and discount into the order lines so
// later catalog edits never affect this order.
func (u *orderUseCaseImpl) buildLines(ctx context.Context, items []reqdto.OrderItemRequest) ([]pricing.CartLine, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, errs.Mark(err, ErrProductNotFound)
		}
		ids = append(ids, id)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}

	lines := make([]pricing.CartLine, 0, len(items))
	for i, item := range items {
		p, ok := byID[ids[i]]
		if !ok {
			return nil, ErrProductNotFound
		}
		// Early refusal on the catalog snapshot; the in-transaction decrement
		// still guards against concurrent checkouts.
		if !p.HasStock(item.Quantity) {
			return nil, ErrInsufficientStock
		}
		line, err := pricing.NewCartLine(p.ID(), p.Price(), p.DiscountPercent(), item.Quantity)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// resolveDiscount applies the mutual-exclusivity rule: a voucher always wins
// over the newsletter discount, and the newsletter discount only applies
// while the user's one-time flag is unused.
func (u *orderUseCaseImpl) resolveDiscount(ctx context.Context, userID uuid.UUID, voucherCode *string) (pricing.Selection, bool, error) {
	if voucherCode != nil && *voucherCode != "" {
		selection, err := u.voucherSelection(ctx, *voucherCode)
		if err != nil {
			return pricing.Selection{}, false, err
		}
		return selection, false, nil
	}

	usr, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return pricing.Selection{}, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if usr.NewsletterDiscountEligible() {
		return pricing.NewsletterSelection(), true, nil
	}

	return pricing.NoDiscount(), false, nil
}

// voucherSelection loads the voucher and lets the aggregate decide whether it
// may be applied.
func (u *orderUseCaseImpl) voucherSelection(ctx context.Context, code string) (pricing.Selection, error) {
	v, err := u.voucherRepo.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return pricing.Selection{}, ErrVoucherInvalid
		}
		return pricing.Selection{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	selection, err := v.Selection()
	if err != nil {
		return pricing.Selection{}, errs.Mark(err, ErrVoucherInvalid)
	}
	return selection, nil
}

func (u *orderUseCaseImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, trackingNumber *string) error {
	to, err := order.NewStatus(status)
	if err != nil {
		return err
	}

	_, err = shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		orderEntity, err := u.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, ErrOrderNotFound
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		from := orderEntity.Status()
		if err := orderEntity.TransitionTo(to, trackingNumber, u.clock.Now()); err != nil {
			return struct{}{}, err
		}

		ok, err := u.orderRepo.UpdateStatus(ctx, tx, orderID, from, to, orderEntity.TrackingNumber(), u.clock.Now())
		if err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !ok {
			return struct{}{}, ErrStatusConflict
		}
		return struct{}{}, nil
	})
	return err
}

func (u *orderUseCaseImpl) Cancel(ctx context.Context, orderID, userID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		orderEntity, err := u.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, ErrOrderNotFound
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if orderEntity.UserID() != userID {
			return struct{}{}, ErrOrderForbidden
		}

		from := orderEntity.Status()
		if err := orderEntity.Cancel(u.clock.Now()); err != nil {
			return struct{}{}, err
		}

		ok, err := u.orderRepo.UpdateStatus(ctx, tx, orderID, from, order.StatusCancelled, nil, u.clock.Now())
		if err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !ok {
			return struct{}{}, ErrStatusConflict
		}
		return struct{}{}, nil
	})
	return err
}

// Adjust recomputes an order's discount-derived totals from its frozen line
// snapshots and records the change in the audit trail. This is the only path
// that touches totals after placement.
func (u *orderUseCaseImpl) Adjust(ctx context.Context, orderID, adminID uuid.UUID, req reqdto.AdjustOrderRequest) (*queries.AdjustmentView, error) {
	selection, err := u.resolveAdjustmentSelection(ctx, req)
	if err != nil {
		return nil, err
	}

	adjustmentID, record, err := u.runAdjustment(ctx, orderID, adminID, req.Reason, selection)
	if err != nil {
		return nil, err
	}

	return &queries.AdjustmentView{
		ID:                 adjustmentID,
		OrderID:            record.OrderID,
		AdjustedBy:         record.AdjustedBy,
		Reason:             record.Reason,
		PreviousDiscount:   record.PreviousDiscount,
		NewDiscount:        record.NewDiscount,
		PreviousTotal:      record.PreviousTotal,
		NewTotal:           record.NewTotal,
		DiscountKindBefore: record.DiscountKindBefore,
		DiscountKindAfter:  record.DiscountKindAfter,
		CreatedAt:          u.clock.Now(),
	}, nil
}

func (u *orderUseCaseImpl) resolveAdjustmentSelection(ctx context.Context, req reqdto.AdjustOrderRequest) (pricing.Selection, error) {
	switch pricing.DiscountKind(req.DiscountKind) {
	case pricing.DiscountNone:
		return pricing.NoDiscount(), nil
	case pricing.DiscountNewsletter:
		return pricing.NewsletterSelection(), nil
	case pricing.DiscountVoucher:
		if req.VoucherCode == nil || *req.VoucherCode == "" {
			return pricing.Selection{}, ErrVoucherInvalid
		}
		return u.voucherSelection(ctx, *req.VoucherCode)
	default:
		return pricing.Selection{}, ErrDomainValidation
	}
}

func (u *orderUseCaseImpl) runAdjustment(
	ctx context.Context,
	orderID, adminID uuid.UUID,
	reason string,
	selection pricing.Selection,
) (uuid.UUID, *AdjustmentRecord, error) {
	var record AdjustmentRecord

	adjustmentID, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (uuid.UUID, error) {
		orderEntity, err := u.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrOrderNotFound
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		previous := orderEntity.Totals()
		recomputed, err := pricing.ComputeTotals(orderEntity.Lines(), selection, previous.Region)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDomainValidation)
		}

		var voucherCode *string
		if selection.Kind() == pricing.DiscountVoucher {
			code := selection.VoucherCode()
			voucherCode = &code
		}

		now := u.clock.Now()
		if err := u.orderRepo.ApplyAdjustment(ctx, tx, orderID, string(recomputed.DiscountKind), voucherCode, recomputed.DiscountAmount, recomputed.ShippingFee, recomputed.Total, now); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		record = AdjustmentRecord{
			OrderID:            orderID,
			AdjustedBy:         adminID,
			Reason:             reason,
			PreviousDiscount:   previous.DiscountAmount,
			NewDiscount:        recomputed.DiscountAmount,
			PreviousTotal:      previous.Total,
			NewTotal:           recomputed.Total,
			DiscountKindBefore: string(previous.DiscountKind),
			DiscountKindAfter:  string(recomputed.DiscountKind),
		}
		id, err := u.adjustmentRepo.Create(ctx, tx, record)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return id, nil
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	return adjustmentID, &record, nil
}

func calculateRequestHash(req reqdto.PlaceOrderRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
