package money

import (
	"errors"
	"testing"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestRound2_HalfUp(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.995", "11.00"},
		{"0.125", "0.13"},
		{"100", "100"},
	}

	for _, tt := range tests {
		in, _ := decimal.NewFromString(tt.in)
		expected, _ := decimal.NewFromString(tt.expected)
		if got := Round2(in); !got.Equal(expected) {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got.String(), tt.expected)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	d := decimal.NewFromFloat(1234.56)
	if got := FromCents(Cents(d)); !got.Equal(d) {
		t.Errorf("FromCents(Cents(1234.56)) = %s, want 1234.56", got.String())
	}
}

func TestAddSub_NoDrift(t *testing.T) {
	// 0.1 + 0.2 is the classic binary float failure case
	a := decimal.NewFromFloat(0.1)
	b := decimal.NewFromFloat(0.2)

	sum := Add(a, b)
	if !sum.Equal(decimal.NewFromFloat(0.3)) {
		t.Errorf("Add(0.1, 0.2) = %s, want 0.3", sum.String())
	}

	diff := Sub(sum, b)
	if !diff.Equal(a) {
		t.Errorf("Sub(0.3, 0.2) = %s, want 0.1", diff.String())
	}
}

func TestMulInt(t *testing.T) {
	per := decimal.NewFromFloat(99.99)
	total := MulInt(per, 12)
	if !total.Equal(decimal.NewFromFloat(1199.88)) {
		t.Errorf("MulInt(99.99, 12) = %s, want 1199.88", total.String())
	}
}

func TestDivInt_Truncates(t *testing.T) {
	total := decimal.NewFromFloat(100.00)
	per, err := DivInt(total, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !per.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("DivInt(100, 3) = %s, want 33.33", per.String())
	}
}

func TestDivInt_ZeroPeriods(t *testing.T) {
	_, err := DivInt(decimal.NewFromInt(100), 0)
	if !errors.Is(err, domain.ErrInvalidPeriodCount) {
		t.Errorf("Expected ErrInvalidPeriodCount, got %v", err)
	}
}

func TestSplit_RemainderToFirstPeriod(t *testing.T) {
	total := decimal.NewFromFloat(100.00)
	first, rest, err := Split(total, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !first.Equal(decimal.NewFromFloat(33.34)) {
		t.Errorf("Expected first period 33.34, got %s", first.String())
	}
	if !rest.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("Expected remaining periods 33.33, got %s", rest.String())
	}

	// The periods must reconstruct the total exactly
	sum := Add(first, MulInt(rest, 2))
	if !sum.Equal(total) {
		t.Errorf("Split periods sum to %s, want %s", sum.String(), total.String())
	}
}

func TestSplit_EvenDivision(t *testing.T) {
	first, rest, err := Split(decimal.NewFromInt(1200), 12)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !first.Equal(decimal.NewFromInt(100)) || !rest.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Split(1200, 12) = (%s, %s), want (100, 100)", first.String(), rest.String())
	}
}

func TestSplit_InvalidPeriodCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, _, err := Split(decimal.NewFromInt(100), n); !errors.Is(err, domain.ErrInvalidPeriodCount) {
			t.Errorf("Split(100, %d): expected ErrInvalidPeriodCount, got %v", n, err)
		}
	}
}
