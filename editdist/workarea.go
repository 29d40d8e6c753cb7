package editdist

import "fmt"

//WorkArea is per-invocation scratch reused across many alignments: the
//diagonal table, the delta stack and delta buffer, and the shared tuning.
//Not safe for concurrent use; build one WorkArea per worker.
type WorkArea struct {
	arena  *arena
	rows   []row //indexed by e, grown lazily
	eMax   int32
	tuning *Tuning

	deltaStack []int32
	delta      []int32
}

func NewWorkArea(cfg Config, tuning *Tuning) (*WorkArea, error) {
	if cfg.EMax < 0 {
		return nil, fmt.Errorf("editdist: EMax must be >= 0, got %d", cfg.EMax)
	}
	if err := tuning.validate(cfg.EMax); err != nil {
		return nil, err
	}
	wa := &WorkArea{
		arena:      newArena(cfg.EditSpaceSize),
		rows:       make([]row, cfg.EMax+1),
		eMax:       cfg.EMax,
		tuning:     tuning,
		deltaStack: make([]int32, 0, cfg.EMax+4),
		delta:      make([]int32, 0, cfg.EMax+4),
	}
	return wa, nil
}

//Delta returns the edit script left by the most recent PrefixEditDist
//call. The slice is owned by the WorkArea and overwritten by the next call.
func (wa *WorkArea) Delta() []int32 {
	return wa.delta
}

func (wa *WorkArea) rowFor(e int32) row {
	if wa.rows[e].data == nil {
		wa.rows[e] = wa.arena.ensure(e)
	}
	return wa.rows[e]
}

func (wa *WorkArea) BlockCount() int {
	return wa.arena.blockCount()
}
