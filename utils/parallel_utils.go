package utils

import "sync"

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Chunks returns the size and starting offset of every bucket
func (pm *PartitionMap) Chunks() (chunks, offsets []int) {
	chunks = make([]int, pm.ParallelDegree)
	offsets = make([]int, pm.ParallelDegree)
	for n, p := range pm.Partitions {
		chunks[n] = p[1] - p[0]
		offsets[n] = p[0]
	}
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Run calls fn concurrently for every non-empty bucket and waits for all of
// them to return.
func (pm *PartitionMap) Run(fn func(bn, kMin, kMax int)) {
	var (
		wg              = sync.WaitGroup{}
		chunks, offsets = pm.Chunks()
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		if chunks[np] == 0 {
			continue
		}
		kMin, kMax := offsets[np], offsets[np]+chunks[np]
		wg.Add(1)
		go func(np, kMin, kMax int) {
			fn(np, kMin, kMax)
			wg.Done()
		}(np, kMin, kMax)
	}
	wg.Wait()
}
