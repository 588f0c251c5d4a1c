package ident

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// New returns a collision-resistant identifier for a new entity. It prefers a
// random UUID from the system's secure entropy source and degrades to a
// pseudo-random identifier of the same shape if that source is unavailable,
// so callers never have to handle an error for id generation.
func New() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return pseudoRandomID()
	}
	return id.String()
}

// pseudoRandomID produces a version-4-shaped identifier from math/rand.
// Lower quality than a real UUID but same format, so stored ids stay uniform.
func pseudoRandomID() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
