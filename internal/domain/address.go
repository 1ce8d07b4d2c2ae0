package domain

// AddressKind is the best-effort classification of an address.
type AddressKind string

const (
	KindWallet    AddressKind = "wallet"
	KindTokenMint AddressKind = "token-mint"
	KindUnknown   AddressKind = "unknown"
)

// String returns the string representation of AddressKind.
func (k AddressKind) String() string {
	return string(k)
}

// Address is the validated form of a raw input string.
// It is created once per request and never mutated.
type Address struct {
	Raw        string      `json:"raw"`
	Normalized string      `json:"address"`
	Kind       AddressKind `json:"kind"`
	Valid      bool        `json:"valid"`
	Format     string      `json:"format"`
	Length     int         `json:"length"`
	Message    string      `json:"message"`
	PublicKey  bool        `json:"public_key"` // decodes to 32 bytes
	OnCurve    bool        `json:"on_curve"`   // ed25519 point; PDAs are off-curve
}
