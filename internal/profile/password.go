// File: internal/profile/password.go
package profile

import (
	"math/rand"
	"sync"
	"time"
)

const (
	tempPasswordPrefix   = "temp"
	tempPasswordLength   = 8
	tempPasswordAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// PasswordGenerator produces temporary passwords for administrator-created
// accounts: "temp" followed by eight base-36 characters. It is pseudo-random,
// not cryptographically strong — parity with the client it replaces, which
// drew from Math.random(). The password is handed to the caller for one-time
// delivery and never written to the user record.
type PasswordGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPasswordGenerator seeds a generator from the current time.
func NewPasswordGenerator() *PasswordGenerator {
	return &PasswordGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate returns a fresh temporary password.
func (g *PasswordGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, 0, len(tempPasswordPrefix)+tempPasswordLength)
	b = append(b, tempPasswordPrefix...)
	for i := 0; i < tempPasswordLength; i++ {
		b = append(b, tempPasswordAlphabet[g.rng.Intn(len(tempPasswordAlphabet))])
	}
	return string(b)
}
