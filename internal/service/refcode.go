package service

import "math/rand/v2"

const (
	RefCodeLength   = 20
	refCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// NewRefCode returns a public order reference. It is not a secret and is not
// generated from a cryptographic source.
func NewRefCode() string {
	b := make([]byte, RefCodeLength)
	for i := range b {
		b[i] = refCodeAlphabet[rand.IntN(len(refCodeAlphabet))]
	}
	return string(b)
}
