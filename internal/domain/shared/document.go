package shared

import "strings"

// NormalizeDocument strips every non-digit character from a fiscal document
// (CPF "123.456.789-09", CNPJ "12.345.678/0001-99", phone-like values).
// Comparisons and storage always use the normalized form so that formatting
// differences never defeat a duplicate check.
func NormalizeDocument(document string) string {
	var b strings.Builder
	b.Grow(len(document))
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Document length constants for the supported fiscal document kinds.
const (
	CPFLength  = 11
	CNPJLength = 14
)

// LooksLikeCPF reports whether a normalized document has CPF length.
func LooksLikeCPF(normalized string) bool {
	return len(normalized) == CPFLength
}

// LooksLikeCNPJ reports whether a normalized document has CNPJ length.
func LooksLikeCNPJ(normalized string) bool {
	return len(normalized) == CNPJLength
}
