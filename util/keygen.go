// Package util contains any functions used across the application that don't match
// any other package
package util

import gonanoid "github.com/matoous/go-nanoid/v2"

// Charset for public audio keys. Lowercase + digits only because the keys
// end up inside callback payloads matched by the routing regexps.
const keyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const keyLength = 16

// PublicKey generates the external-facing lookup token for an audio record.
func PublicKey() (string, error) {
	return gonanoid.Generate(keyCharset, keyLength)
}
