// Package whatsapp builds click-to-chat links for sharing documents.
package whatsapp

import (
	"net/url"
	"strings"
)

const shareBaseURL = "https://wa.me/"

// FormatPhoneNumber keeps only digits and adds the Brazilian country code
// (55) to national numbers: area code plus 8 or 9 digits, optionally with a
// leading trunk zero.
func FormatPhoneNumber(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	cleaned := b.String()

	if strings.HasPrefix(cleaned, "55") && (len(cleaned) == 12 || len(cleaned) == 13) {
		return cleaned
	}
	national := strings.TrimLeft(cleaned, "0")
	if len(national) == 10 || len(national) == 11 {
		return "55" + national
	}
	return cleaned
}

// ShareURL returns a wa.me link carrying text. Without a usable phone the
// link opens the contact picker instead of a specific chat.
func ShareURL(phone, text string) string {
	query := "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return shareBaseURL + FormatPhoneNumber(phone) + query
}
