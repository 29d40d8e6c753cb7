package editdist

import "fmt"

//Tuning holds the branch-point scoring constants, shared read-only across
//every WorkArea built from it. The score is longest*MatchValue - errors,
//which assumes MatchValue - ErrorValue == 1.0; there is no separate error
//knob. EditMatchLimit[e] is the minimum row value (adjusted for column
//drift) a diagonal must reach at level e to stay in the band.
type Tuning struct {
	EditMatchLimit     []int32
	BranchPtMatchValue float64
}

func DefaultTuning(eMax int32) *Tuning {
	limit := make([]int32, eMax+1)
	for e := int32(0); e <= eMax; e++ {
		//half an error-level of slack keeps branch-point candidates
		//alive on divergent input
		limit[e] = e / 2
	}
	return &Tuning{EditMatchLimit: limit, BranchPtMatchValue: 1.5}
}

func (t *Tuning) validate(eMax int32) error {
	if t.BranchPtMatchValue <= 1.0 {
		return fmt.Errorf("editdist: BranchPtMatchValue must be > 1.0 (MATCH-ERROR==1.0 requires a positive error value), got %f", t.BranchPtMatchValue)
	}
	if int32(len(t.EditMatchLimit)) < eMax+1 {
		return fmt.Errorf("editdist: EditMatchLimit must cover e_max+1 entries, have %d want %d", len(t.EditMatchLimit), eMax+1)
	}
	return nil
}

//Config holds the construction-time options for a WorkArea.
type Config struct {
	EditSpaceSize int   //initial arena block size in cells
	EMax          int32 //upper bound on the error level the kernel will reach
}

func DefaultConfig() Config {
	return Config{EditSpaceSize: DefaultEditSpaceSize, EMax: 1024}
}
