package domain

import "testing"

func TestClampedBounds(t *testing.T) {
	tests := []struct {
		name string
		in   GenerationRequest
		want GenerationRequest
	}{
		{
			name: "in range untouched",
			in:   GenerationRequest{MaxLength: 150, Temperature: 0.8, TopK: 50, TopP: 0.95},
			want: GenerationRequest{MaxLength: 150, Temperature: 0.8, TopK: 50, TopP: 0.95},
		},
		{
			name: "max_length far above cap",
			in:   GenerationRequest{MaxLength: 10000, Temperature: 0.8, TopK: 50, TopP: 0.95},
			want: GenerationRequest{MaxLength: 500, Temperature: 0.8, TopK: 50, TopP: 0.95},
		},
		{
			name: "max_length zero clamps up to minimum",
			in:   GenerationRequest{MaxLength: 0, Temperature: 0.8, TopK: 50, TopP: 0.95},
			want: GenerationRequest{MaxLength: 50, Temperature: 0.8, TopK: 50, TopP: 0.95},
		},
		{
			name: "negative max_length clamps up to minimum",
			in:   GenerationRequest{MaxLength: -10, Temperature: 0.8, TopK: 50, TopP: 0.95},
			want: GenerationRequest{MaxLength: 50, Temperature: 0.8, TopK: 50, TopP: 0.95},
		},
		{
			name: "every parameter out of range",
			in:   GenerationRequest{MaxLength: 9999, Temperature: 12.0, TopK: 100000, TopP: 3.5},
			want: GenerationRequest{MaxLength: 500, Temperature: 1.5, TopK: 1000, TopP: 1.0},
		},
		{
			name: "every parameter below range",
			in:   GenerationRequest{MaxLength: 1, Temperature: 0.0, TopK: 0, TopP: 0.0},
			want: GenerationRequest{MaxLength: 50, Temperature: 0.05, TopK: 1, TopP: 0.01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			if got != tt.want {
				t.Fatalf("Clamped() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestClampedPreservesSeedText(t *testing.T) {
	req := GenerationRequest{SeedText: "Write about: rain. ", MaxLength: 99999}
	got := req.Clamped()
	if got.SeedText != req.SeedText {
		t.Fatalf("Clamped() altered SeedText: %q", got.SeedText)
	}
	if got.MaxLength != MaxMaxLength {
		t.Fatalf("expected MaxLength %d, got %d", MaxMaxLength, got.MaxLength)
	}
}
