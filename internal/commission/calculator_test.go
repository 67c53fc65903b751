package commission

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestSplitStandardRate(t *testing.T) {
	settlement, err := Split(dec("1000.00"), dec("0.05"))
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !settlement.Commission.Equal(dec("50.00")) {
		t.Fatalf("expected commission 50.00 got %s", settlement.Commission)
	}
	if !settlement.SellerAmount.Equal(dec("950.00")) {
		t.Fatalf("expected seller amount 950.00 got %s", settlement.SellerAmount)
	}
}

func TestSplitAlwaysSumsExactly(t *testing.T) {
	totals := []string{"0.01", "0.03", "19.99", "33.33", "100.00", "999.99", "12345.67"}
	rates := []string{"0", "0.01", "0.05", "0.075", "0.1", "0.333", "0.5", "1"}

	for _, total := range totals {
		for _, rate := range rates {
			settlement, err := Split(dec(total), dec(rate))
			if err != nil {
				t.Fatalf("Split(%s, %s): %v", total, rate, err)
			}
			sum := settlement.Commission.Add(settlement.SellerAmount)
			if !sum.Equal(dec(total)) {
				t.Errorf("Split(%s, %s): commission %s + seller %s = %s, want %s",
					total, rate, settlement.Commission, settlement.SellerAmount, sum, total)
			}
		}
	}
}

func TestSplitBoundaryRates(t *testing.T) {
	settlement, err := Split(dec("100.00"), decimal.Zero)
	if err != nil {
		t.Fatalf("rate 0 should be valid: %v", err)
	}
	if !settlement.Commission.IsZero() {
		t.Fatalf("expected zero commission got %s", settlement.Commission)
	}

	settlement, err = Split(dec("100.00"), decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("rate 1 should be valid: %v", err)
	}
	if !settlement.SellerAmount.IsZero() {
		t.Fatalf("expected zero seller amount got %s", settlement.SellerAmount)
	}
}

func TestSplitRejectsInvalidInputs(t *testing.T) {
	cases := []struct {
		name  string
		total string
		rate  string
	}{
		{"negative total", "-1.00", "0.05"},
		{"negative rate", "100.00", "-0.01"},
		{"rate above one", "100.00", "1.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(dec(tc.total), dec(tc.rate))
			if err == nil {
				t.Fatal("expected error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}
