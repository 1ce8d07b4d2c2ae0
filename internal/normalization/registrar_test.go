package normalization

import (
	"testing"

	"solana-address-checker/internal/domain"
)

func TestRegistrarCountry(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"GoDaddy.com, LLC", "United States"},
		{"godaddy.com, llc", "United States"},
		{"xyz GoDaddy reseller", "United States"},
		{"Unknown Registrar Ltd", "Registrar: Unknown Registrar Ltd"},
		{"Tucows Domains Inc.", "Canada"},
		{"Gandi SAS", "France"},
		{"", domain.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegistrarCountry(tt.name); got != tt.want {
				t.Errorf("RegistrarCountry(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
