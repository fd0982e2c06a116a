// Package ident generates short entity identifiers.
package ident

import "math/rand"

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	length   = 9
)

// New returns a 9-character pseudo-random base-36 token. Collisions are
// improbable but not impossible; nothing detects them.
func New() string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
