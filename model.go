package ridewitus

import (
	"time"

	"gorm.io/datatypes"
)

// A Model is the essential timestamps for records,
// indicating when a record was created and last updated.
type Model struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Exists asserts whether the record has been persisted.
func (m Model) Exists() bool { return !m.CreatedAt.IsZero() }

// A PricingTier is a subscription plan offered to Accounts.
type PricingTier struct {
	Model
	ID       string                      `gorm:"primaryKey" json:"id"`
	Name     string                      `json:"name"`
	Price    float64                     `json:"price"`
	Interval Interval                    `json:"interval"`
	Features datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features"`
	PriceRef *string                     `json:"priceRef,omitempty"`
	Position int                         `json:"position"`
}

// IsPriced asserts whether the tier charges money.
func (pt PricingTier) IsPriced() bool { return pt.Price > 0 }

// Offerable asserts whether the tier can be shown for purchase:
// a priced tier needs an external billing price reference.
func (pt PricingTier) Offerable() bool {
	return !pt.IsPriced() || (pt.PriceRef != nil && *pt.PriceRef != "")
}

// Valid checks the invariants of a single PricingTier.
func (pt PricingTier) Valid() error {
	switch {
	case pt.ID == "":
		return ErrPricingNoID
	case pt.Name == "":
		return ErrPricingNoName
	case pt.Price < 0:
		return ErrPricingNegative
	case pt.Interval.Valid() != nil:
		return ErrPricingInterval
	case !pt.Offerable():
		return ErrPricingNoRef
	default:
		return nil
	}
}

var (
	ErrPricingNoID      = NewCodedError(CodeInvalidPricing, ErrNotValid, "pricing tier requires an id")
	ErrPricingNoName    = NewCodedError(CodeInvalidPricing, ErrNotValid, "pricing tier requires a name")
	ErrPricingNegative  = NewCodedError(CodeInvalidPricing, ErrNotValid, "pricing tier price must not be negative")
	ErrPricingInterval  = NewCodedError(CodeInvalidPricing, ErrNotValid, "pricing tier interval must be month or year")
	ErrPricingNoRef     = NewCodedError(CodeInvalidPricing, ErrNotValid, "priced tier requires a billing price reference")
	ErrPricingDuplicate = NewCodedError(CodeInvalidPricing, ErrNotValid, "pricing tier ids must be unique")
)
