// Package roomid generates short human-typeable room codes.
package roomid

import (
	"crypto/rand"
	"math/big"
)

// Alphabet avoids characters players misread over voice chat: no 0/O, no 1/I/L
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// Length is the number of characters in a room code
const Length = 6

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator. A nil RandSource means crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new room code using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new room code. Codes are not guaranteed unique; the room
// registry collision-checks against active rooms and retries.
func (g *Generator) Generate() string {
	code := make([]byte, Length)
	for i := range code {
		code[i] = alphabet[g.index(len(alphabet))]
	}
	return string(code)
}

func (g *Generator) index(n int) int {
	if g.randSource != nil {
		return g.randSource.IntN(n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("failed to generate random room code: " + err.Error())
	}
	return int(v.Int64())
}

// Valid reports whether s is a well-formed room code
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		found := false
		for j := 0; j < len(alphabet); j++ {
			if s[i] == alphabet[j] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
