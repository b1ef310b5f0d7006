// Package validators provides enforcement of business rules over inbound
// values, decoupled from transport and storage layers.
//
// The password policy lives here so that every write path that sets a
// password (registration, administrative creation, reset, update) applies
// the same rule through a single predicate.
package validators

// MinPasswordLength is the minimum number of bytes a password must contain.
const MinPasswordLength = 6

// IsValidPassword reports whether candidate satisfies the password policy:
// at least [MinPasswordLength] characters, at least one ASCII letter and at
// least one digit. Other characters are permitted.
//
// Pure function, no side effects.
func IsValidPassword(candidate string) bool {
	if len(candidate) < MinPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, c := range candidate {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
