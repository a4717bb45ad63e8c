package promised

import (
	"testing"
)

func BenchmarkProperty_GetHit(b *testing.B) {
	sq := NewSquare()
	if _, err := squareArea.Get(sq); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		squareArea.Get(sq)
	}
}

func BenchmarkProperty_SetCascade(b *testing.B) {
	box := &Box{}
	if _, err := boxVolume.Get(box); err != nil {
		b.Fatal(err)
	}
	base, _ := boxBase.Peek(box)
	side, _ := squareSide.Peek(base)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lineLength.Set(side, i)
		boxVolume.Get(box)
	}
}

func BenchmarkProperty_ChainReplace(b *testing.B) {
	sq := NewSquare()
	lines := []*Line{NewLine(1), NewLine(2)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		squareSide.Set(sq, lines[i%2])
		squareArea.Get(sq)
	}
}

func BenchmarkMember_Get(b *testing.B) {
	m := NewMember(squared)
	for i := range 100 {
		m.Get(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(i % 100)
	}
}

func BenchmarkMember_GetWithEviction(b *testing.B) {
	m := NewMember(squared, WithCapacity[int, int](100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(i)
	}
}

func BenchmarkMember_LFU(b *testing.B) {
	m := NewMember(squared,
		WithCapacity[int, int](100),
		WithPolicy[int, int](LFU),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(i % 150)
	}
}
