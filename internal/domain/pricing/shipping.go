package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownRegion = errors.New("unknown shipping region")

type Region string

const (
	RegionWest          Region = "west"
	RegionEast          Region = "east"
	RegionInternational Region = "international"
)

func NewRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RegionWest, RegionEast, RegionInternational:
		return r, nil
	default:
		return "", ErrUnknownRegion
	}
}

func (r Region) String() string {
	return string(r)
}

// ShippingTier holds a region's flat fee and its free-shipping threshold.
type ShippingTier struct {
	BaseFee       decimal.Decimal
	FreeThreshold decimal.Decimal
}

// Tier values preserved from the storefront's published rates:
// West Malaysia RM 10 (free from RM 100), East Malaysia RM 15 (free from
// RM 150), International RM 25 (free from RM 200).
var shippingTiers = map[Region]ShippingTier{
	RegionWest:          {BaseFee: decimal.NewFromInt(10), FreeThreshold: decimal.NewFromInt(100)},
	RegionEast:          {BaseFee: decimal.NewFromInt(15), FreeThreshold: decimal.NewFromInt(150)},
	RegionInternational: {BaseFee: decimal.NewFromInt(25), FreeThreshold: decimal.NewFromInt(200)},
}

func TierFor(region Region) (ShippingTier, error) {
	tier, ok := shippingTiers[region]
	if !ok {
		return ShippingTier{}, ErrUnknownRegion
	}
	return tier, nil
}

// shippingFee applies the free-shipping threshold against the discounted
// subtotal. Equality with the threshold yields free shipping.
func shippingFee(tier ShippingTier, discountedSubtotal decimal.Decimal) decimal.Decimal {
	if discountedSubtotal.GreaterThanOrEqual(tier.FreeThreshold) {
		return decimal.Zero
	}
	return tier.BaseFee
}
