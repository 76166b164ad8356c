package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Bucket sizes differ by at most one and cover the range
		getHisto := func(K, Np int) (histo map[int]int) {
			chunks, _ := NewPartitionMap(Np, K).Chunks()
			histo = make(map[int]int)
			for _, c := range chunks {
				histo[c]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Chunks and offsets are contiguous
		pm := NewPartitionMap(3, 10)
		chunks, offsets := pm.Chunks()
		assert.Equal(t, []int{4, 3, 3}, chunks)
		assert.Equal(t, []int{0, 4, 7}, offsets)
		for n, p := range pm.Partitions {
			assert.Equal(t, offsets[n], p[0])
			assert.Equal(t, offsets[n]+chunks[n], p[1])
		}
	}
	{ // Run visits every index exactly once
		pm := NewPartitionMap(7, 100)
		visits := make([]int, 100)
		pm.Run(func(bn, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				visits[k]++
			}
		})
		for k := range visits {
			assert.Equal(t, 1, visits[k])
		}
		NewPartitionMap(4, 0).Run(func(bn, kMin, kMax int) {
			t.Errorf("empty range should not run a bucket")
		})
	}
	{ // Degenerate parallel degree falls back to a single bucket
		pm := NewPartitionMap(0, 7)
		assert.Equal(t, 1, pm.ParallelDegree)
		assert.Equal(t, [2]int{0, 7}, pm.Partitions[0])
	}
}
