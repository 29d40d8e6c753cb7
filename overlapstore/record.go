package overlapstore

import (
	"github.com/biogo/hts/sam"
)

//Record is one corrected overlap: the pair of sequence ids involved, the
//aligned region in each, and the delta script the kernel produced.
type Record struct {
	AID, BID     uint32
	AStart, AEnd int32
	BStart, BEnd int32
	Errors       int32
	MatchToEnd   bool
	Delta        []int32
}

func (r *Record) ID() uint64 {
	return uint64(r.AID)<<32 | uint64(r.BID)
}

//CIGAR renders the delta script as a biogo/hts CIGAR with A as the query
//and B as the reference. Runs of matches between edits become CigarEqual;
//a positive delta value is a base present only in A (CigarInsertion,
//query-consuming) and a negative one a base present only in B
//(CigarDeletion, reference-consuming). Substitutions are not encoded in a
//delta script and surface inside the CigarEqual runs.
func (r *Record) CIGAR() sam.Cigar {
	length := r.AEnd - r.AStart
	if length < 0 {
		length = 0
	}
	cig := make(sam.Cigar, 0, len(r.Delta)*2+1)
	consumed := int32(0)
	for _, v := range r.Delta {
		run := v
		if run < 0 {
			run = -run
		}
		run-- //magnitude encodes match-run-length plus one trailing edit slot
		if run > 0 {
			cig = append(cig, sam.NewCigarOp(sam.CigarEqual, int(run)))
			consumed += run
		}
		if v > 0 {
			cig = append(cig, sam.NewCigarOp(sam.CigarInsertion, 1))
			consumed++
		} else {
			cig = append(cig, sam.NewCigarOp(sam.CigarDeletion, 1))
		}
	}
	if consumed < length {
		cig = append(cig, sam.NewCigarOp(sam.CigarEqual, int(length-consumed)))
	}
	return cig
}
