// File: internal/profile/password_test.go
package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShape(t *testing.T) {
	g := NewPasswordGenerator()
	for i := 0; i < 100; i++ {
		p := g.Generate()
		assert.Len(t, p, 12)
		assert.Regexp(t, `^temp[0-9a-z]{8}$`, p)
	}
}

func TestGenerateDistinct(t *testing.T) {
	g := NewPasswordGenerator()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		seen[g.Generate()] = struct{}{}
	}
	// 36^8 values; 1000 draws colliding would indicate a broken generator.
	assert.Len(t, seen, 1000)
}

func TestGenerateConcurrentUse(t *testing.T) {
	g := NewPasswordGenerator()
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_ = g.Generate()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
