package queue

import (
	"bytes"
	"testing"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name string
	size int
}

// benchConfigs defines the number of pending elements for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Small/Size64", 64},
	{"Medium/Size1K", 1024},
	{"Large/Size64K", 64 * 1024},
}

// queueFactory creates a Queue[int] with the given initial capacity.
type queueFactory func(capacity int) Queue[int]

var queueImplementations = map[string]queueFactory{
	"FIFOSet": func(capacity int) Queue[int] {
		q, _ := NewFIFOSet[int](capacity)
		return q
	},
}

// ===========================================================================
// Queue Interface Benchmarks
// ===========================================================================

// BenchmarkEnqueue measures Enqueue of distinct values, including growth.
func BenchmarkEnqueue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := factory(0)
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					q.Enqueue(i % cfg.size)
					// Drain to keep the working set bounded
					if i%cfg.size == cfg.size-1 {
						b.StopTimer()
						for j := 0; j < cfg.size; j++ {
							q.Dequeue()
						}
						b.StartTimer()
					}
				}
			})
		}
	}
}

// BenchmarkEnqueueDequeue measures roundtrip Enqueue+Dequeue.
func BenchmarkEnqueueDequeue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			b.Run(implName+"/"+cfg.name, func(b *testing.B) {
				q := factory(cfg.size)
				for i := 0; i < cfg.size/2; i++ {
					q.Enqueue(-i - 1)
				}
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					q.Enqueue(i)
					q.Dequeue()
				}
			})
		}
	}
}

// ===========================================================================
// FIFOSet Specific Benchmarks
// ===========================================================================

// BenchmarkFIFOSet_DuplicateEnqueue measures the rejected-duplicate path.
func BenchmarkFIFOSet_DuplicateEnqueue(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewDefaultFIFOSet[int]()
			for i := 0; i < cfg.size; i++ {
				q.EnqueueBack(i)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				q.EnqueueBack(i % cfg.size)
			}
		})
	}
}

// BenchmarkFIFOSet_Contains measures membership testing.
func BenchmarkFIFOSet_Contains(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewDefaultFIFOSet[int]()
			for i := 0; i < cfg.size; i++ {
				q.EnqueueBack(i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = q.Contains(i % (2 * cfg.size))
			}
		})
	}
}

// BenchmarkFIFOSet_RemoveMiddle measures arbitrary removal in the worst position.
func BenchmarkFIFOSet_RemoveMiddle(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewDefaultFIFOSet[int]()
			for i := 0; i < cfg.size; i++ {
				q.EnqueueBack(i)
			}
			mid := cfg.size / 2
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q.Remove(mid)
				b.StopTimer()
				q.EnqueueBack(mid)
				q.Remove(q.buf[q.head])
				q.EnqueueFront(cfg.size + i)
				mid = q.buf[q.slot(q.Len()/2)]
				b.StartTimer()
			}
		})
	}
}

// BenchmarkFIFOSet_Encode measures serialization throughput.
func BenchmarkFIFOSet_Encode(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewDefaultFIFOSet[int]()
			for i := 0; i < cfg.size; i++ {
				q.EnqueueBack(i)
			}
			var buf bytes.Buffer
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				_ = q.Encode(&buf, IntCodec{})
			}
		})
	}
}
