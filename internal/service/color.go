package service

import (
	"math/rand/v2"
	"sync"
)

// AvatarPalette holds the colours handed out to new users
var AvatarPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F",
	"#BB8FCE", "#85C1E2", "#F8B739", "#52B788", "#E63946", "#457B9D",
}

// ColorPicker selects avatar colours from an injected random source
type ColorPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewColorPicker uses src, or a randomly seeded PCG when src is nil
func NewColorPicker(src rand.Source) *ColorPicker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &ColorPicker{rng: rand.New(src)}
}

// Pick returns a palette colour
func (p *ColorPicker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AvatarPalette[p.rng.IntN(len(AvatarPalette))]
}
