package domain

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CylinderType enumerates the cylinder sizes that can be booked.
type CylinderType string

const (
	Cylinder14Kg CylinderType = "14.2kg"
	Cylinder5Kg  CylinderType = "5kg"
)

// Valid reports whether t is one of the bookable cylinder sizes.
func (t CylinderType) Valid() bool {
	return t == Cylinder14Kg || t == Cylinder5Kg
}

// UnitPrice returns the fixed per-cylinder price in rupees. Unknown types
// price at 0; callers are expected to validate the type at the input boundary.
func (t CylinderType) UnitPrice() int {
	switch t {
	case Cylinder14Kg:
		return 850
	case Cylinder5Kg:
		return 450
	default:
		return 0
	}
}

// PriceFor computes the booking amount: unit price times quantity. The result
// is locked into the Booking at creation time and never recomputed, so later
// changes to the pricing table do not affect existing bookings.
func PriceFor(t CylinderType, quantity int) int {
	return t.UnitPrice() * quantity
}

// PaymentMethod enumerates how a booking is paid. The method is recorded on
// the booking only; no payment is processed.
type PaymentMethod string

const (
	PayCard       PaymentMethod = "card"
	PayUPI        PaymentMethod = "upi"
	PayNetBanking PaymentMethod = "netbanking"
	PayCOD        PaymentMethod = "cod"
)

// Valid reports whether m is a recognized payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCard, PayUPI, PayNetBanking, PayCOD:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
//
// Bookings are created directly in StatusConfirmed; StatusPending exists in
// the enumeration (and has display derivations) but no operation here produces
// it. Delivered and cancelled are terminal: nothing in this package
// transitions out of them, and cancellation eligibility is enforced by the
// caller, never by the store.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusOutForDelivery BookingStatus = "out-for-delivery"
	StatusDelivered      BookingStatus = "delivered"
	StatusCancelled      BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is provided from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Label returns the human-readable display string for s. Unrecognized values
// fall back to the raw status text.
func (s BookingStatus) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusPending:
		return "Pending"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Color returns the presentation color token for s, with a muted fallback for
// anything outside the enumeration.
func (s BookingStatus) Color() string {
	switch s {
	case StatusConfirmed:
		return "success"
	case StatusPending:
		return "warning"
	case StatusOutForDelivery:
		return "secondary"
	case StatusDelivered:
		return "primary"
	case StatusCancelled:
		return "destructive"
	default:
		return "muted"
	}
}

// DeliveryWindow is how far ahead of creation the delivery date is promised.
const DeliveryWindow = 48 * time.Hour

// Booking is a single cylinder order. Amount and DeliveryDate are derived
// once at creation and stored (never recomputed); DeliveryAddress is a
// snapshot independent of later changes to the owner's profile address.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	CylinderType    CylinderType  `json:"cylinder_type"`
	Quantity        int           `json:"quantity"`
	DeliveryAddress string        `json:"delivery_address"`
	Status          BookingStatus `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Amount          int           `json:"amount"`
	CreatedAt       time.Time     `json:"created_at"`
	DeliveryDate    time.Time     `json:"delivery_date,omitempty"`
}

// inr formats rupee amounts with Indian digit grouping (1,70,000).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a rupee amount for display, e.g. 1700 -> "₹1,700".
func FormatINR(amount int) string {
	return inr.Sprintf("₹%v", number.Decimal(amount))
}
