package ridewitus

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Implementing a new Enumerable or adding a new constant value ought to include updating the database with the same
// types and values.
type Enumerable interface {
	String() string
	Valid() error
}

var (
	_ Enumerable = Role("")
	_ Enumerable = SubscriptionStatus("")
	_ Enumerable = ActivityType("")
	_ Enumerable = Interval("")
	_ Enumerable = ImportMode("")
	_ Enumerable = Unit("")
)

var lower = cases.Lower(language.Und)

// fold canonicalizes enum input.
// Older clients send uppercase values ("USER", "FREE"); those fold to the lowercase constants.
func fold(s string) string { return lower.String(strings.TrimSpace(s)) }

// A Role controls administrative authorization.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole folds s into a Role, returning ErrNotValid for unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(fold(s))
	if err := r.Valid(); err != nil {
		return "", err
	}

	return r, nil
}

func (r Role) String() string { return string(r) }

func (r Role) Valid() error {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return nil
	default:
		return fmt.Errorf("%w: role %q", ErrNotValid, string(r))
	}
}

// CanAdminister asserts whether the Role may use administrative account operations at all.
func (r Role) CanAdminister() bool { return r == RoleManager || r == RoleAdmin }

// UnmarshalText folds legacy casing while decoding.
func (r *Role) UnmarshalText(b []byte) error {
	*r = Role(fold(string(b)))
	return nil
}

// A SubscriptionStatus is the billing plan an Account is on.
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionMonthly SubscriptionStatus = "monthly"
	SubscriptionAnnual  SubscriptionStatus = "annual"
	SubscriptionNone    SubscriptionStatus = "none"
)

// ParseSubscriptionStatus folds s into a SubscriptionStatus, returning ErrNotValid for unknown values.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	ss := SubscriptionStatus(fold(s))
	if err := ss.Valid(); err != nil {
		return "", err
	}

	return ss, nil
}

func (ss SubscriptionStatus) String() string { return string(ss) }

func (ss SubscriptionStatus) Valid() error {
	switch ss {
	case SubscriptionFree, SubscriptionMonthly, SubscriptionAnnual, SubscriptionNone:
		return nil
	default:
		return fmt.Errorf("%w: subscription status %q", ErrNotValid, string(ss))
	}
}

// IsPremium asserts whether the status unlocks paid features such as cloud sync.
func (ss SubscriptionStatus) IsPremium() bool {
	return ss == SubscriptionMonthly || ss == SubscriptionAnnual
}

func (ss *SubscriptionStatus) UnmarshalText(b []byte) error {
	*ss = SubscriptionStatus(fold(string(b)))
	return nil
}

// An ActivityType is the kind of movement an Activity logs.
type ActivityType string

const (
	Walking ActivityType = "walking"
	Running ActivityType = "running"
	Biking  ActivityType = "biking"
	Driving ActivityType = "driving"
)

// ActivityTypes lists every valid ActivityType.
var ActivityTypes = []ActivityType{Walking, Running, Biking, Driving}

// ParseActivityType folds s into an ActivityType, returning ErrNotValid for unknown values.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(fold(s))
	if err := t.Valid(); err != nil {
		return "", err
	}

	return t, nil
}

func (t ActivityType) String() string { return string(t) }

func (t ActivityType) Valid() error {
	switch t {
	case Walking, Running, Biking, Driving:
		return nil
	default:
		return fmt.Errorf("%w: activity type %q", ErrNotValid, string(t))
	}
}

func (t *ActivityType) UnmarshalText(b []byte) error {
	*t = ActivityType(fold(string(b)))
	return nil
}

// An Interval is how often a PricingTier bills.
type Interval string

const (
	Monthly Interval = "month"
	Yearly  Interval = "year"
)

func (i Interval) String() string { return string(i) }

func (i Interval) Valid() error {
	switch i {
	case Monthly, Yearly:
		return nil
	default:
		return fmt.Errorf("%w: interval %q", ErrNotValid, string(i))
	}
}

func (i *Interval) UnmarshalText(b []byte) error {
	*i = Interval(fold(string(b)))
	return nil
}

// An ImportMode decides what happens to existing activities when importing new ones.
type ImportMode string

const (
	// ImportMerge keeps existing activities and adds imported ones whose IDs are new.
	ImportMerge ImportMode = "merge"

	// ImportReplace discards existing activities, leaving only the imported set.
	ImportReplace ImportMode = "replace"
)

func (m ImportMode) String() string { return string(m) }

func (m ImportMode) Valid() error {
	switch m {
	case ImportMerge, ImportReplace:
		return nil
	default:
		return fmt.Errorf("%w: import mode %q", ErrNotValid, string(m))
	}
}

func (m *ImportMode) UnmarshalText(b []byte) error {
	*m = ImportMode(fold(string(b)))
	return nil
}

// A Unit is a linear distance unit.
type Unit string

const (
	Miles      Unit = "miles"
	Kilometers Unit = "km"
)

// ParseUnit folds s into a Unit, returning ErrNotValid for unknown values.
func ParseUnit(s string) (Unit, error) {
	u := Unit(fold(s))
	if err := u.Valid(); err != nil {
		return "", err
	}

	return u, nil
}

func (u Unit) String() string { return string(u) }

func (u Unit) Valid() error {
	switch u {
	case Miles, Kilometers:
		return nil
	default:
		return fmt.Errorf("%w: unit %q", ErrNotValid, string(u))
	}
}

func (u *Unit) UnmarshalText(b []byte) error {
	*u = Unit(fold(string(b)))
	return nil
}
