package utils // helpers for booking reference codes and login OTPs

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding of the random bytes
)

// RefCodeLen is the length in characters of a booking reference
// code.  Four random bytes encode to eight hex characters, which is
// short enough to read over the phone while keeping the collision
// probability negligible for the volumes a distribution point sees.
const RefCodeLen = 8

// NewRefCode returns a fresh booking reference code: RefCodeLen hex
// characters from a cryptographically strong source.  Uniqueness is
// additionally enforced by the unique key on bookings.ref_code.
func NewRefCode() (string, error) {
	buf := make([]byte, RefCodeLen/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ExpectedOTP derives the one-time password for a ration card
// number: the last four characters of the card.  Cards shorter than
// four characters use the whole card.  There is no SMS delivery in
// this system; the distribution office prints the rule on the card
// sleeve.
func ExpectedOTP(rationCard string) string {
	if len(rationCard) <= 4 {
		return rationCard
	}
	return rationCard[len(rationCard)-4:]
}
