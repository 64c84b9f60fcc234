package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP codes are 6-digit numbers drawn uniformly from [100000, 999999], so
// every code has the same number of digits.
const (
	otpMin   = 100000
	otpRange = 900000
)

// GenerateOTP returns a random 6-digit one-time passcode as a string.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
