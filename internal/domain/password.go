package domain

import "unicode"

const MinPasswordLen = 6

// CheckPasswordLength enforces the minimum length used by reset and change flows.
func CheckPasswordLength(pw string) error {
	if len(pw) < MinPasswordLen {
		return ErrWeakPassword("Password must be at least 6 characters long")
	}
	return nil
}

// CheckPasswordStrength is applied to new accounts: minimum length plus at
// least one upper-case letter, lower-case letter, digit and special character.
func CheckPasswordStrength(pw string) error {
	if err := CheckPasswordLength(pw); err != nil {
		return err
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrWeakPassword("Password must contain at least one uppercase letter, one lowercase letter, one number and one special character")
	}
	return nil
}
