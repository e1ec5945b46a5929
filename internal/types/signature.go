package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DomainType is the domain prefix for content-addressed type identity.
// Version suffix enables future algorithm migration.
const DomainType = "sigil/type/v1"

// Signature returns a deterministic textual form of t suitable for
// hashing and interning keys. Identifiers (bundle field names) are NFC
// normalized so visually identical names produce identical signatures
// regardless of the Unicode composition the frontend happened to use.
//
// Signature differs from String only in identifier normalization; both
// are stable across process restarts.
func Signature(t Type) string {
	var b strings.Builder
	writeSignature(&b, t)
	return b.String()
}

func writeSignature(b *strings.Builder, t Type) {
	switch tt := t.(type) {
	case Vector:
		b.WriteString("vector<")
		writeSignature(b, tt.Elem)
		fmt.Fprintf(b, ", %d>", tt.Size)
	case Bundle:
		b.WriteString("bundle<")
		for i, f := range tt.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if f.Flip {
				b.WriteString("flip ")
			}
			b.WriteString(norm.NFC.String(f.Name))
			b.WriteString(": ")
			writeSignature(b, f.Type)
		}
		b.WriteString(">")
	case InOut:
		b.WriteString("inout<")
		writeSignature(b, tt.Elem)
		b.WriteString(">")
	default:
		b.WriteString(t.String())
	}
}

// Hash computes the content-addressed identity of t.
// Format: SHA256(domain + 0x00 + signature). The null separator
// prevents domain/data boundary ambiguity.
func Hash(t Type) string {
	h := sha256.New()
	h.Write([]byte(DomainType))
	h.Write([]byte{0x00})
	h.Write([]byte(Signature(t)))
	return hex.EncodeToString(h.Sum(nil))
}
