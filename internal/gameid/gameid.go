// Package gameid generates sortable identifiers for game sessions,
// used to correlate log lines and simulation results.
package gameid

import (
	"crypto/rand"
	"time"
)

// Crockford's base32 alphabet, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generate creates a new session ID: a UUIDv7 encoded as a 26-character
// base32 string. IDs sort lexicographically by creation time.
func Generate() string {
	return encodeBase32(newUUIDv7())
}

// newUUIDv7 builds a 128-bit UUIDv7: 48-bit millisecond timestamp,
// version and variant bits, remainder random.
func newUUIDv7() [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	// crypto/rand never fails on supported platforms
	_, _ = rand.Read(uuid[6:])

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return uuid
}

// encodeBase32 packs the 128 bits into 26 base32 characters.
func encodeBase32(uuid [16]byte) string {
	out := make([]byte, 0, 26)
	var acc uint32
	bits := 0
	for _, b := range uuid {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, alphabet[(acc>>uint(bits))&31])
		}
	}
	if bits > 0 {
		out = append(out, alphabet[(acc<<uint(5-bits))&31])
	}
	return string(out)
}
