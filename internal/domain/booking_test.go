package domain

import "testing"

func TestUnitPrice(t *testing.T) {
	if got := Cylinder14Kg.UnitPrice(); got != 850 {
		t.Fatalf("14.2kg unit price = %d; want 850", got)
	}
	if got := Cylinder5Kg.UnitPrice(); got != 450 {
		t.Fatalf("5kg unit price = %d; want 450", got)
	}
	if got := CylinderType("19kg").UnitPrice(); got != 0 {
		t.Fatalf("unknown type priced at %d; want 0", got)
	}
}

func TestPriceFor(t *testing.T) {
	for q := 1; q <= 5; q++ {
		if got := PriceFor(Cylinder14Kg, q); got != 850*q {
			t.Errorf("PriceFor(14.2kg, %d) = %d; want %d", q, got, 850*q)
		}
		if got := PriceFor(Cylinder5Kg, q); got != 450*q {
			t.Errorf("PriceFor(5kg, %d) = %d; want %d", q, got, 450*q)
		}
	}
}

func TestCylinderTypeValid(t *testing.T) {
	if !Cylinder14Kg.Valid() || !Cylinder5Kg.Valid() {
		t.Fatalf("known cylinder types must be valid")
	}
	if CylinderType("").Valid() || CylinderType("19kg").Valid() {
		t.Fatalf("unknown cylinder types must be invalid")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PayCard, PayUPI, PayNetBanking, PayCOD} {
		if !m.Valid() {
			t.Errorf("method %q should be valid", m)
		}
	}
	if PaymentMethod("cheque").Valid() {
		t.Fatalf("unknown method should be invalid")
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusPending:        false,
		StatusConfirmed:      false,
		StatusOutForDelivery: false,
		StatusDelivered:      true,
		StatusCancelled:      true,
	}
	for s, want := range terminal {
		if got := s.Terminal(); got != want {
			t.Errorf("Terminal(%q) = %v; want %v", s, got, want)
		}
	}
}

func TestStatusLabelAndColor(t *testing.T) {
	labels := map[BookingStatus]string{
		StatusPending:        "Pending",
		StatusConfirmed:      "Confirmed",
		StatusOutForDelivery: "Out for Delivery",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
	for s, want := range labels {
		if got := s.Label(); got != want {
			t.Errorf("Label(%q) = %q; want %q", s, got, want)
		}
	}
	// Fallback: raw value for labels, muted token for colors.
	if got := BookingStatus("weird").Label(); got != "weird" {
		t.Errorf("unknown label = %q; want raw value", got)
	}
	if got := BookingStatus("weird").Color(); got != "muted" {
		t.Errorf("unknown color = %q; want muted", got)
	}

	colors := map[BookingStatus]string{
		StatusPending:        "warning",
		StatusConfirmed:      "success",
		StatusOutForDelivery: "secondary",
		StatusDelivered:      "primary",
		StatusCancelled:      "destructive",
	}
	for s, want := range colors {
		if got := s.Color(); got != want {
			t.Errorf("Color(%q) = %q; want %q", s, got, want)
		}
	}
}

func TestFormatINR_IndianGrouping(t *testing.T) {
	cases := map[int]string{
		450:    "₹450",
		1700:   "₹1,700",
		170000: "₹1,70,000",
	}
	for in, want := range cases {
		if got := FormatINR(in); got != want {
			t.Errorf("FormatINR(%d) = %q; want %q", in, got, want)
		}
	}
}
