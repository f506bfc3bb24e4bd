// Package pass encodes registration passes: the "<userId>:<eventId>" token
// and its QR rendering.
package pass

import (
	"fmt"
	"strconv"
	"strings"

	"eventpass/internal/domain"
)

const separator = ":"

// Encode returns the pass token for a (user, event) pair. It is a pure
// function: the same pair always yields the same token.
func Encode(userID, eventID int64) string {
	return strconv.FormatInt(userID, 10) + separator + strconv.FormatInt(eventID, 10)
}

// Decode splits a token on its first ':' and parses both halves. Anything
// Encode could not have produced fails with domain.ErrMalformedToken.
func Decode(token string) (userID, eventID int64, err error) {
	left, right, ok := strings.Cut(token, separator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: missing separator", domain.ErrMalformedToken)
	}
	if userID, err = parseCanonical(left); err != nil {
		return 0, 0, fmt.Errorf("%w: user id %q", domain.ErrMalformedToken, left)
	}
	if eventID, err = parseCanonical(right); err != nil {
		return 0, 0, fmt.Errorf("%w: event id %q", domain.ErrMalformedToken, right)
	}
	return userID, eventID, nil
}

// parseCanonical rejects forms like "+1" or "007" so that Decode only
// accepts tokens byte-identical to what Encode produces.
func parseCanonical(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if strconv.FormatInt(n, 10) != s {
		return 0, fmt.Errorf("non-canonical integer")
	}
	return n, nil
}
