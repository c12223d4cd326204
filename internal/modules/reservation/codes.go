package reservation

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

const (
	codePrefix           = "RES"
	confirmationCodeLen  = 12
	maxCodeAttempts      = 5
	reservationCodeDigit = 10000
)

// newReservationCode builds the human-readable booking code:
// RES + yyyymmdd + 4 random digits. Not unique by construction; callers
// retry against the store.
func newReservationCode(now time.Time) string {
	return fmt.Sprintf("%s%s%04d", codePrefix, now.Format("20060102"), rand.Intn(reservationCodeDigit))
}

// newConfirmationCode derives an unguessable 12-character token from hashed
// random input. No cryptographic guarantee is claimed beyond that.
func newConfirmationCode() string {
	buf := make([]byte, 24)
	_, _ = cryptorand.Read(buf)
	sum := sha3.Sum256(buf)
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:confirmationCodeLen]
}

// generateCodes allocates both codes, regenerating on collision.
func (s *Service) generateCodes(ctx context.Context, now time.Time) (code, confirmation string, err error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code = newReservationCode(now)
		exists, err := s.reservations.CodeExists(ctx, code)
		if err != nil {
			return "", "", err
		}
		if !exists {
			break
		}
		code = ""
	}
	if code == "" {
		return "", "", ErrCodeCollision
	}

	for i := 0; i < maxCodeAttempts; i++ {
		confirmation = newConfirmationCode()
		exists, err := s.reservations.ConfirmationCodeExists(ctx, confirmation)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return code, confirmation, nil
		}
	}
	return "", "", ErrCodeCollision
}
