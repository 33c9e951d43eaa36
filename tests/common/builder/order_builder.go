//go:build unit || e2e

package builder

import (
	"time"

	domorder "dicetrails/internal/domain/order"
	"dicetrails/internal/domain/pricing"
	reqdto "dicetrails/internal/handler/dto/request"
	"dicetrails/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLineSpec struct {
	ProductID       uuid.UUID
	UnitPrice       decimal.Decimal
	DiscountPercent int
	Quantity        int
}

type OrderBuilder struct {
	UserID        uuid.UUID
	Lines         []OrderLineSpec
	FirstName     string
	LastName      string
	Email         string
	Street        string
	City          string
	State         string
	Zipcode       string
	Country       string
	Phone         string
	PaymentMethod domorder.PaymentMethod
	Region        pricing.Region
	PlacedAt      time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		UserID: uuid.New(),
		Lines: []OrderLineSpec{
			{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(40), DiscountPercent: 0, Quantity: 2},
		},
		FirstName:     "Aina",
		LastName:      "Rahman",
		Email:         "aina@example.com",
		Street:        "12 Jalan Meru",
		City:          "Klang",
		State:         "Selangor",
		Zipcode:       "41050",
		Country:       "Malaysia",
		Phone:         "0123456789",
		PaymentMethod: domorder.PaymentCOD,
		Region:        pricing.RegionWest,
		PlacedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildDraft() domorder.Draft {
	lines := make([]pricing.CartLine, 0, len(b.Lines))
	for _, spec := range b.Lines {
		lines = append(lines, pricing.ReconstructCartLine(spec.ProductID, spec.UnitPrice, spec.DiscountPercent, spec.Quantity))
	}
	return domorder.Draft{
		Lines: lines,
		Address: domorder.Address{
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Street:    b.Street,
			City:      b.City,
			State:     b.State,
			Zipcode:   b.Zipcode,
			Country:   b.Country,
			Phone:     b.Phone,
		},
		PaymentMethod: b.PaymentMethod,
		Region:        b.Region,
	}
}

func (b *OrderBuilder) BuildDomain(selection pricing.Selection) (*domorder.Order, error) {
	return domorder.NewOrder(b.PlacedAt, b.UserID, b.BuildDraft(), selection)
}

func (b *OrderBuilder) BuildPlaceOrderRequestDTO() reqdto.PlaceOrderRequest {
	items := make([]reqdto.OrderItemRequest, 0, len(b.Lines))
	for _, spec := range b.Lines {
		items = append(items, reqdto.OrderItemRequest{ProductID: spec.ProductID.String(), Quantity: spec.Quantity})
	}
	return reqdto.PlaceOrderRequest{
		Items:         items,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		Street:        b.Street,
		City:          b.City,
		State:         b.State,
		Zipcode:       b.Zipcode,
		Country:       b.Country,
		Phone:         b.Phone,
		PaymentMethod: string(b.PaymentMethod),
		Region:        b.Region.String(),
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	lines := make([]queries.OrderLineView, 0, len(b.Lines))
	subtotal := decimal.Zero
	for _, spec := range b.Lines {
		line := pricing.ReconstructCartLine(spec.ProductID, spec.UnitPrice, spec.DiscountPercent, spec.Quantity)
		total := line.LineTotal().Round(2)
		subtotal = subtotal.Add(total)
		lines = append(lines, queries.OrderLineView{
			ProductID:       spec.ProductID,
			ProductName:     "Test Product",
			UnitPrice:       spec.UnitPrice,
			DiscountPercent: int32(spec.DiscountPercent),
			Quantity:        int32(spec.Quantity),
			LineTotal:       total,
		})
	}
	return &queries.OrderView{
		ID:            uuid.New(),
		OrderNumber:   "30000001",
		UserID:        b.UserID,
		UserEmail:     b.Email,
		Status:        domorder.StatusReadyToShip.String(),
		Lines:         lines,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		Street:        b.Street,
		City:          b.City,
		State:         b.State,
		Zipcode:       b.Zipcode,
		Country:       b.Country,
		Phone:         b.Phone,
		PaymentMethod: string(b.PaymentMethod),
		Region:        b.Region.String(),
		Subtotal:      subtotal,
		DiscountKind:  string(pricing.DiscountNone),
		ShippingFee:   decimal.NewFromInt(10),
		Total:         subtotal.Add(decimal.NewFromInt(10)),
		PlacedAt:      b.PlacedAt,
		UpdatedAt:     b.PlacedAt,
	}
}
