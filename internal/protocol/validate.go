package protocol

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

// ValidUsername reports whether u is 1–250 ASCII letters. Usernames are
// case-sensitive; no other characters are allowed.
func ValidUsername(u string) bool {
	if len(u) == 0 || len(u) > UsernameSize-1 {
		return false
	}
	for i := 0; i < len(u); i++ {
		c := u[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}

// ValidPIN reports whether p is exactly four ASCII digits.
func ValidPIN(p string) bool {
	if len(p) != PINSize {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

// ParseAmount parses a non-negative decimal amount, rejecting anything that
// is not pure digits or does not fit the wire's signed 32-bit field.
func ParseAmount(s string) (int32, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty amount", common.ErrValidation)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: amount %q is not a number", common.ErrValidation, s)
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: amount %q out of range", common.ErrValidation, s)
	}

	return int32(v), nil
}
