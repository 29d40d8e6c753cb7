//Package seqio loads FASTA/FASTQ reads for the correction pipeline, built
//on biogo. A whole input file is held in memory rather than re-read per
//request: correction batches are bounded by the overlap store's candidate
//list, not by the read set itself.
package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/klauspost/compress/gzip"
)

type Record struct {
	Name    string
	Bases   []byte
	Quality []byte //nil if the input was FASTA
}

//Set is a loaded collection of Records addressed by a stable integer id,
//with per-sequence trim/ignore bookkeeping layered on top.
type Set struct {
	records   []Record
	frontTrim []int
	backTrim  []int
	ignore    []bool
	byName    map[string]int
}

//Open reads every sequence from path (gzip-compressed if the name ends in
//".gz") into a new Set. The format is sniffed from the first byte: '@'
//means FASTQ, anything else is treated as FASTA.
func Open(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seqio: open %s: %w", path, err)
	}
	defer f.Close()

	var raw io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("seqio: gzip %s: %w", path, err)
		}
		defer gz.Close()
		raw = gz
	}

	buf := bufio.NewReader(raw)
	first, err := buf.Peek(1)
	if err != nil {
		if err == io.EOF {
			return &Set{byName: make(map[string]int)}, nil
		}
		return nil, fmt.Errorf("seqio: read %s: %w", path, err)
	}

	s := &Set{byName: make(map[string]int)}
	if first[0] == '@' {
		if err := s.readFastq(buf); err != nil {
			return nil, fmt.Errorf("seqio: parse fastq %s: %w", path, err)
		}
	} else {
		if err := s.readFasta(buf); err != nil {
			return nil, fmt.Errorf("seqio: parse fasta %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *Set) add(rec Record) {
	s.byName[rec.Name] = len(s.records)
	s.records = append(s.records, rec)
	s.frontTrim = append(s.frontTrim, 0)
	s.backTrim = append(s.backTrim, 0)
	s.ignore = append(s.ignore, false)
}

func (s *Set) readFasta(r io.Reader) error {
	rd := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		v, err := rd.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		ls := v.(*linear.Seq)
		bases := make([]byte, len(ls.Seq))
		for i, l := range ls.Seq {
			bases[i] = byte(l)
		}
		s.add(Record{Name: ls.ID, Bases: bases})
	}
}

func (s *Set) readFastq(r io.Reader) error {
	rd := fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	for {
		v, err := rd.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		qs := v.(*linear.QSeq)
		bases := make([]byte, len(qs.Seq))
		quality := make([]byte, len(qs.Seq))
		for i, l := range qs.Seq {
			bases[i] = byte(l.L)
			quality[i] = byte(l.Q)
		}
		s.add(Record{Name: qs.ID, Bases: bases, Quality: quality})
	}
}

func (s *Set) Size() int { return len(s.records) }

func (s *Set) ID(name string) (int, bool) {
	id, ok := s.byName[name]
	return id, ok
}

func (s *Set) Name(id int) string { return s.records[id].Name }

func (s *Set) Bases(id int) []byte {
	b := s.records[id].Bases
	return b[s.frontTrim[id] : len(b)-s.backTrim[id]]
}

func (s *Set) Len(id int) int {
	return len(s.records[id].Bases) - s.frontTrim[id] - s.backTrim[id]
}

func (s *Set) SetFrontTrim(id, trim int) { s.frontTrim[id] = trim }
func (s *Set) SetBackTrim(id, trim int)  { s.backTrim[id] = trim }
func (s *Set) GetFrontTrim(id int) int   { return s.frontTrim[id] }
func (s *Set) GetBackTrim(id int) int    { return s.backTrim[id] }

func (s *Set) SetIgnore(id int, ignore bool) { s.ignore[id] = ignore }

func (s *Set) Each(fn func(id int)) {
	for id := range s.records {
		if !s.ignore[id] {
			fn(id)
		}
	}
}
