package buffer

import (
	"testing"
)

func BenchmarkBufferWrite(b *testing.B) {
	buf1, err := NewCircularBuffer[int](100, WithOverflowPolicy[int](DropOldest))
	if err != nil {
		b.Fatal(err)
	}
	buf2, err := NewCircularBuffer[int](100, WithOverflowPolicy[int](DropNewest))
	if err != nil {
		b.Fatal(err)
	}
	buf3, err := NewCircularBuffer[int](1000, WithOverflowPolicy[int](DropOldest))
	if err != nil {
		b.Fatal(err)
	}

	benchmarks := []struct {
		name   string
		buffer Buffer[int]
	}{
		{"Circular_100_DropOldest", buf1},
		{"Circular_100_DropNewest", buf2},
		{"Circular_1000_DropOldest", buf3},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			buffer := bm.buffer
			defer buffer.Close()

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					buffer.Write(i)
					i++
				}
			})
		})
	}
}

func BenchmarkBufferRead(b *testing.B) {
	buffer, err := NewCircularBuffer[int](1000, WithOverflowPolicy[int](DropOldest))
	if err != nil {
		b.Fatal(err)
	}
	defer buffer.Close()

	for i := 0; i < 1000; i++ {
		_ = buffer.Write(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := buffer.Read(); !ok {
			// Refill when drained so reads stay hot
			b.StopTimer()
			for j := 0; j < 1000; j++ {
				_ = buffer.Write(j)
			}
			b.StartTimer()
		}
	}
}

func BenchmarkBufferItems(b *testing.B) {
	buffer, err := NewCircularBuffer[int](100, WithOverflowPolicy[int](DropOldest))
	if err != nil {
		b.Fatal(err)
	}
	defer buffer.Close()

	for i := 0; i < 150; i++ {
		_ = buffer.Write(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		items := buffer.Items()
		if len(items) != 100 {
			b.Fatalf("unexpected snapshot length %d", len(items))
		}
	}
}

func BenchmarkBufferOverflow(b *testing.B) {
	buffer, err := NewCircularBuffer[int](10, WithOverflowPolicy[int](DropOldest))
	if err != nil {
		b.Fatal(err)
	}
	defer buffer.Close()

	// Fill so every subsequent write overflows
	for i := 0; i < 10; i++ {
		_ = buffer.Write(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buffer.Write(i)
	}
}
