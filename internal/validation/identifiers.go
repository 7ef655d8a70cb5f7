package validation

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const nifLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// ValidNIF reports whether s is a Spanish NIF (8 digits and a control letter) or
// NIE (X, Y or Z, 7 digits and a control letter)
func ValidNIF(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 9 {
		return false
	}

	switch s[0] {
	case 'X':
		s = "0" + s[1:]
	case 'Y':
		s = "1" + s[1:]
	case 'Z':
		s = "2" + s[1:]
	}

	n := 0
	for _, r := range s[:8] {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return s[8] == nifLetters[n%23]
}

// ValidIBAN reports whether s is an IBAN with a valid mod-97 checksum. Spaces are ignored.
func ValidIBAN(s string) bool {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if len(s) < 15 || len(s) > 34 {
		return false
	}
	if !unicode.IsLetter(rune(s[0])) || !unicode.IsLetter(rune(s[1])) ||
		!unicode.IsDigit(rune(s[2])) || !unicode.IsDigit(rune(s[3])) {
		return false
	}

	// Move the country code and check digits to the end, then letters become 10..35
	rearranged := s[4:] + s[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			digits.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return false
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}
