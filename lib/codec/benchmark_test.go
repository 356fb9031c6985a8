package codec

import (
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

func BenchmarkSequenceOfPoints(b *testing.B) {
	points := make([]point, 1000)
	for i := range points {
		points[i] = point{X: int32(i), Y: int32(-i), Name: "p"}
	}
	s := SliceOf(Nested[point](), Unbounded)
	buf := wire.NewGrowable(32 * 1024)

	b.Run("Encode", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			buf.Clear()
			if err := s.Write(buf, points); err != nil {
				b.Fatal(err)
			}
		}
	})

	buf.Clear()
	if err := s.Write(buf, points); err != nil {
		b.Fatal(err)
	}
	if err := buf.Finalize(); err != nil {
		b.Fatal(err)
	}

	b.Run("Decode", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = buf.Rewind()
			if _, err := s.Read(buf); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkPolymorphic(b *testing.B) {
	animals := newAnimals(b)
	s := Poly(animals)
	buf := wire.NewGrowable(64)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Clear()
		if err := s.Write(buf, &dog{Name: "rex"}); err != nil {
			b.Fatal(err)
		}
		_ = buf.Finalize()
		if _, err := s.Read(buf); err != nil {
			b.Fatal(err)
		}
	}
}
