package domain

import (
	"regexp"
	"strconv"
	"strings"
)

type CardType string

const (
	Visa       CardType = "VISA"
	Mastercard CardType = "MASTERCARD"
	Unknown    CardType = "UNKNOWN"
)

// AllowedCards is the set of card numbers a user may link to their account.
// Binding is stricter than charging: the processor takes any Luhn-valid
// Visa/Mastercard, but accounts only accept numbers from this list.
var AllowedCards = map[string]bool{
	"4111111111111111": true,
	"4242424242424242": true,
}

// ValidCardNumber reports whether the number may be linked to an account.
func ValidCardNumber(number string) bool {
	return AllowedCards[cleanCardNumber(number)]
}

// CardBrand checks if the card is valid on the processor side and returns
// its brand.
func CardBrand(number string) (CardType, bool) {
	cleanNum := cleanCardNumber(number)

	// 1. Check if it's a valid number (Luhn Algorithm)
	if !passesLuhn(cleanNum) {
		return Unknown, false
	}

	// 2. Check the Brand (Visa vs Mastercard)
	// Visa: Starts with 4, length 13 or 16
	visaRegex := regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)

	// Mastercard: Starts with 51-55, length 16
	masterRegex := regexp.MustCompile(`^5[1-5][0-9]{14}$`)

	if visaRegex.MatchString(cleanNum) {
		return Visa, true
	}
	if masterRegex.MatchString(cleanNum) {
		return Mastercard, true
	}

	// Amex, Discover, etc. are not accepted
	return Unknown, false
}

func cleanCardNumber(number string) string {
	cleanNum := strings.ReplaceAll(number, " ", "")
	return strings.ReplaceAll(cleanNum, "-", "")
}

// passesLuhn implements the standard Mod 10 check used by all banks
func passesLuhn(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	alternate := false
	for i := len(number) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(string(number[i]))
		if err != nil {
			return false
		}
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}
