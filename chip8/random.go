package chip8

import "math/rand"

/// RandomSource provides the bytes used by RND.
///
type RandomSource interface {
	Byte() byte
}

type randomSource struct {
	rng *rand.Rand
}

/// NewRandomSource returns a pseudo-random source seeded with seed.
///
func NewRandomSource(seed int64) RandomSource {
	return &randomSource{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomSource) Byte() byte {
	return byte(r.rng.Intn(256))
}

/// ScriptedSource replays a fixed sequence of bytes, starting over when
/// it runs out. An empty script always returns 0.
///
type ScriptedSource struct {
	Bytes []byte

	pos int
}

func (s *ScriptedSource) Byte() byte {
	if len(s.Bytes) == 0 {
		return 0
	}

	b := s.Bytes[s.pos%len(s.Bytes)]

	s.pos++
	return b
}
