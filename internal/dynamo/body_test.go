package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"close", TierClose},
		{"Close", TierClose},
		{" FAR ", TierFar},
		{"medium", TierMedium},
		{"", TierMedium},
		{"orbit-ish", TierMedium},
	}

	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTierBaseDistance(t *testing.T) {
	if TierClose.BaseDistance() != 10 || TierMedium.BaseDistance() != 20 || TierFar.BaseDistance() != 30 {
		t.Error("unexpected base distances")
	}
	if Tier(42).BaseDistance() != 20 {
		t.Error("invalid tier should fall back to medium distance")
	}
}

func TestBodyValidate(t *testing.T) {
	tests := []struct {
		name string
		body Body
		ok   bool
	}{
		{"valid", Body{ID: "a", Mass: 1, Radius: 0.1}, true},
		{"empty id", Body{Mass: 1, Radius: 0.1}, false},
		{"zero mass", Body{ID: "a", Radius: 0.1}, false},
		{"negative radius", Body{ID: "a", Mass: 1, Radius: -1}, false},
		{"NaN mass", Body{ID: "a", Mass: math.NaN(), Radius: 1}, false},
		{"infinite mass", Body{ID: "a", Mass: math.Inf(1), Radius: 1}, false},
		{"infinite radius", Body{ID: "a", Mass: 1, Radius: math.Inf(1)}, false},
		{"NaN position", Body{ID: "a", Mass: 1, Radius: 1, Position: Vec3(math.NaN(), 0, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.body.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidBody) {
				t.Errorf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	p := DefaultParams()
	p.MinDistance = p.MaxDistance
	if err := p.Validate(); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
