package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatflowers/bankgate/pkg/types"
)

// ErrDigest is returned when a digest cannot be computed.
var ErrDigest = errors.New("digest unavailable")

// Signer computes request and response digests with a single signing mode.
type Signer struct {
	mode types.SigningMode
}

func NewSigner(mode types.SigningMode) (*Signer, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unsupported signing mode %q", mode)
	}
	return &Signer{mode: mode}, nil
}

func (s *Signer) Mode() types.SigningMode { return s.mode }

// RequestCanonical joins the signed request fields in their fixed order,
// without separators.
func RequestCanonical(n *PaymentNotification) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil notification", ErrDigest)
	}
	if n.DebitAmount == nil {
		return "", fmt.Errorf("%w: debitAmount is missing", ErrDigest)
	}
	var b strings.Builder
	b.WriteString(n.Mobile)
	b.WriteString(n.BankCode)
	b.WriteString(n.AccountNo)
	b.WriteString(n.PayDate)
	b.WriteString(strconv.FormatInt(*n.DebitAmount, 10))
	b.WriteString(n.RespCode)
	b.WriteString(n.TraceTransfer)
	b.WriteString(n.MessageType)
	return b.String(), nil
}

// ResponseCanonical joins the signed acknowledgement fields in their fixed order.
func ResponseCanonical(code, message, responseID, responseTime string) string {
	return code + message + responseID + responseTime
}

// RequestDigest returns the lower-case hex digest a partner must send as checkSum.
func (s *Signer) RequestDigest(n *PaymentNotification, secret string) (string, error) {
	data, err := RequestCanonical(n)
	if err != nil {
		return "", err
	}
	return s.digest(data, secret)
}

// ResponseDigest returns the acknowledgement checkSum.
func (s *Signer) ResponseDigest(code, message, responseID, responseTime, secret string) (string, error) {
	return s.digest(ResponseCanonical(code, message, responseID, responseTime), secret)
}

// VerifyRequest reports whether n.CheckSum equals the recomputed digest.
// The comparison is exact and case-sensitive.
func (s *Signer) VerifyRequest(n *PaymentNotification, secret string) (bool, error) {
	expected, err := s.RequestDigest(n, secret)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.CheckSum)) == 1, nil
}

func (s *Signer) digest(data, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: empty secret", ErrDigest)
	}
	switch s.mode {
	case types.SigningModeHMAC:
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(data))
		return hex.EncodeToString(mac.Sum(nil)), nil
	case types.SigningModeSecretSuffix:
		sum := sha256.Sum256([]byte(data + secret))
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("%w: unsupported signing mode %q", ErrDigest, s.mode)
	}
}
