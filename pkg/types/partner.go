package types

type SigningMode string

const (
	// SigningModeHMAC signs canonical data with HMAC-SHA256 keyed by the partner secret.
	SigningModeHMAC SigningMode = "hmac_sha256"
	// SigningModeSecretSuffix hashes canonical data with the secret appended (SHA-256).
	SigningModeSecretSuffix SigningMode = "sha256_secret_suffix"
)

func (m SigningMode) Valid() bool {
	return m == SigningModeHMAC || m == SigningModeSecretSuffix
}

// Partner is a bank or payment provider allowed to push notifications.
type Partner struct {
	Code   string `json:"code" mapstructure:"code"`
	Secret string `json:"-" mapstructure:"secret"`
	// Name is informational only
	Name string `json:"name" mapstructure:"name"`
}

// String never includes the secret.
func (p Partner) String() string {
	return "Partner{" + p.Code + "}"
}
