package editdist

import "fmt"

//16Mi cells hold rows 0 through 4093 (row e takes 2e+5 cells) in a single
//block, well past the default EMax of 1024
const DefaultEditSpaceSize = 16 << 20

//row is a centred view into an arena block: data[mid+d] holds D[e][d], so
//negative diagonals index below the midpoint
type row struct {
	data []int32
	mid  int
}

func (r row) get(d int32) int32 {
	return r.data[r.mid+int(d)]
}

func (r row) set(d int32, v int32) {
	r.data[r.mid+int(d)] = v
}

func rowSpan(e int32) int {
	return int(2*e) + 5 //the band [-e,e] plus two pad cells each side for row e+1's sentinels
}

func rowMid(e int32) int {
	return int(e) + 2
}

//arena is append-only storage for diagonal rows. Blocks are never freed;
//once handed out a row stays valid for the arena's lifetime.
type arena struct {
	blocks    [][]int32
	cur       []int32
	used      int
	blockSize int
	nextRow   int32
}

func newArena(initialSize int) *arena {
	if initialSize <= 0 {
		initialSize = DefaultEditSpaceSize
	}
	return &arena{blockSize: initialSize}
}

//ensure returns row e's backing storage, allocating a new block (doubled
//until it fits) when the current one has no room left. Rows must be
//requested in ascending order starting from 0.
func (a *arena) ensure(e int32) row {
	if e != a.nextRow {
		panic(fmt.Sprintf("editdist: arena rows must be requested in order, got %d, expected %d", e, a.nextRow))
	}
	need := rowSpan(e)
	if a.cur == nil || a.used+need > len(a.cur) {
		size := a.blockSize
		for size < need {
			size *= 2
		}
		if size < need {
			panic(fmt.Sprintf("editdist: arena cannot allocate %d cells for row %d", need, e))
		}
		a.cur = make([]int32, size)
		a.blocks = append(a.blocks, a.cur)
		a.used = 0
	}
	start := a.used
	a.used += need
	a.nextRow++
	return row{data: a.cur[start : start+need], mid: rowMid(e)}
}

func (a *arena) blockCount() int {
	return len(a.blocks)
}
