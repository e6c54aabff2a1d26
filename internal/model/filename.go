package model

import (
	"fmt"
	"strings"
)

// ArtifactFilename derives the on-disk name for a fetched invoice PDF.
// It is a pure function of its inputs: the idempotence check and the write path
// must both go through it so a re-run recognizes files from a previous run.
//
// The customer name is reduced to alphanumerics, spaces, and underscores,
// trailing whitespace is stripped, and spaces become underscores.
func ArtifactFilename(customerName, accountNumber, invoiceID string) string {
	var b strings.Builder
	for _, r := range customerName {
		if isAlnum(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}
	// Only plain spaces survive the filter above, so trimming spaces is
	// equivalent to trimming trailing whitespace on the original name.
	safe := strings.TrimRight(b.String(), " ")
	safe = strings.ReplaceAll(safe, " ", "_")
	return fmt.Sprintf("%s_%s_%s.pdf", safe, accountNumber, invoiceID)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
