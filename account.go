package ridewitus

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// An Account is a registered user of the app.
//
// An agent's HTTP requests are authenticated first by a specific request
// with email & password data matching credentials stored on the Account.
// Upon a match, a signed token is set in a cookie.
// Further requests are authenticated by verifying that token.
//
// An Account has many Activities.
type Account struct {
	Model
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	Password           []byte             `json:"-"`
	Role               Role               `json:"role"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionExpiry *time.Time         `json:"subscriptionExpiry,omitempty"`
	BillingRef         *string            `json:"-"`
	PreferredUnit      Unit               `json:"preferredUnit"`
}

// GetID returns the Account's ID as a string.
func (a Account) GetID() string { return a.ID.String() }

// GetEmail returns the Account's email address.
func (a Account) GetEmail() string { return a.Email }

// IsPremium asserts whether the Account's subscription unlocks paid features.
func (a Account) IsPremium() bool { return a.SubscriptionStatus.IsPremium() }

// DisplayUnit returns the Account's preferred unit, defaulting to Miles.
func (a Account) DisplayUnit() Unit {
	if a.PreferredUnit.Valid() != nil {
		return Miles
	}

	return a.PreferredUnit
}

// HasBillingRef asserts whether the Account is already known to the billing provider.
func (a Account) HasBillingRef() bool { return a.BillingRef != nil && *a.BillingRef != "" }

// LogValue hides the password digest and billing reference from logs.
//
// LogValue implements [log/slog.LogValuer].
func (a Account) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", a.ID.String()),
		slog.String("email", a.Email),
		slog.String("role", a.Role.String()),
		slog.Any("password", MaskedLogValue),
	)
}
