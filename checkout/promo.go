package checkout

import "strings"

// The storefront currently runs a single promotion: code FREE waives the
// whole order. Codes are matched case-insensitively.
const promoCodeFree = "FREE"

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidPromoCode(code string) bool {
	return NormalizePromoCode(code) == promoCodeFree
}
