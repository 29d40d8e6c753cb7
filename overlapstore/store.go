//Package overlapstore is the on-disk record of corrected overlaps: shards
//of streamvbyte-packed records tied together by a plain-text manifest.
package overlapstore

import (
	"bufio"
	"bytes"
	"container/heap"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/mhr3/streamvbyte"
)

type Writer struct {
	f       *os.File
	w       *bufio.Writer
	scratch []uint32
	packed  []byte
}

func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("overlapstore: create %s: %w", path, err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

//Put appends rec as one frame: an 8-byte header (value count, packed byte
//length) followed by the streamvbyte-packed columns (AID, BID, endpoints,
//Errors, MatchToEnd, delta length, then the zigzag-encoded delta).
func (wr *Writer) Put(rec Record) error {
	n := 9 + len(rec.Delta)
	if cap(wr.scratch) < n {
		wr.scratch = make([]uint32, n)
	}
	wr.scratch = wr.scratch[:n]
	wr.scratch[0] = rec.AID
	wr.scratch[1] = rec.BID
	wr.scratch[2] = zigzagEncode(rec.AStart)
	wr.scratch[3] = zigzagEncode(rec.AEnd)
	wr.scratch[4] = zigzagEncode(rec.BStart)
	wr.scratch[5] = zigzagEncode(rec.BEnd)
	wr.scratch[6] = zigzagEncode(rec.Errors)
	wr.scratch[7] = boolToUint32(rec.MatchToEnd)
	wr.scratch[8] = uint32(len(rec.Delta))
	for i, v := range rec.Delta {
		wr.scratch[9+i] = zigzagEncode(v)
	}

	need := streamvbyte.MaxEncodedLen(len(wr.scratch))
	if cap(wr.packed) < need {
		wr.packed = make([]byte, need)
	}
	packed := streamvbyte.EncodeUint32(wr.scratch, &streamvbyte.EncodeOptions[uint32]{Buffer: wr.packed[:need]})
	wr.packed = packed[:cap(packed)]

	//streamvbyte's control-byte grouping covers the whole call, so a
	//reader must know the value count up front to decode any of it; the
	//frame header carries that count alongside the packed byte length.
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(wr.scratch)))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(packed)))
	if _, err := wr.w.Write(header[:]); err != nil {
		return fmt.Errorf("overlapstore: write frame header: %w", err)
	}
	if _, err := wr.w.Write(packed); err != nil {
		return fmt.Errorf("overlapstore: write frame body: %w", err)
	}
	return nil
}

func (wr *Writer) Close() error {
	if err := wr.w.Flush(); err != nil {
		wr.f.Close()
		return fmt.Errorf("overlapstore: flush: %w", err)
	}
	return wr.f.Close()
}

type Reader struct {
	f *os.File
	r *bufio.Reader
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlapstore: open %s: %w", path, err)
	}
	return &Reader{f: f, r: bufio.NewReader(f)}, nil
}

func (rd *Reader) Scan() <-chan *Record {
	out := make(chan *Record, 16)
	go func() {
		defer close(out)
		defer rd.f.Close()
		var header [8]byte
		var raw []byte
		var vals []uint32
		for {
			if _, err := io.ReadFull(rd.r, header[:]); err != nil {
				return //EOF or truncated trailer: end of shard
			}
			count := int(binary.LittleEndian.Uint32(header[0:4]))
			byteLen := int(binary.LittleEndian.Uint32(header[4:8]))
			if cap(raw) < byteLen {
				raw = make([]byte, byteLen)
			}
			raw = raw[:byteLen]
			if _, err := io.ReadFull(rd.r, raw); err != nil {
				return
			}
			if cap(vals) < count {
				vals = make([]uint32, count)
			}
			vals = streamvbyte.DecodeUint32(raw, count, &streamvbyte.DecodeOptions[uint32]{Buffer: vals[:0]})

			rec := &Record{
				AID:        vals[0],
				BID:        vals[1],
				AStart:     zigzagDecode(vals[2]),
				AEnd:       zigzagDecode(vals[3]),
				BStart:     zigzagDecode(vals[4]),
				BEnd:       zigzagDecode(vals[5]),
				Errors:     zigzagDecode(vals[6]),
				MatchToEnd: vals[7] != 0,
			}
			deltaLen := int(vals[8])
			if deltaLen > 0 {
				rec.Delta = make([]int32, deltaLen)
				for i := 0; i < deltaLen; i++ {
					rec.Delta[i] = zigzagDecode(vals[9+i])
				}
			}
			out <- rec
		}
	}()
	return out
}

//Manifest is the plain-text, line-oriented list of shard paths belonging
//to one overlap store.
type Manifest struct {
	Path   string
	Shards []string
}

func WriteManifest(path string, shards []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("overlapstore: create manifest %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, s := range shards {
		if _, err := w.WriteString(s + "\n"); err != nil {
			return fmt.Errorf("overlapstore: write manifest entry: %w", err)
		}
	}
	return w.Flush()
}

func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlapstore: open manifest %s: %w", path, err)
	}
	defer f.Close()
	m := &Manifest{Path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		m.Shards = append(m.Shards, string(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("overlapstore: read manifest %s: %w", path, err)
	}
	return m, nil
}

type heapItem struct {
	rec   *Record
	ch    <-chan *Record
	index int
}

type mergeHeap []*heapItem

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].rec.ID() < h[j].rec.ID() }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*heapItem)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

//Merge combines shard files into one output shard via a streaming heap
//merge. Each input must already be sorted by Record.ID(), which is true of
//any shard produced by a single Writer fed records in AID/BID order.
func Merge(paths []string, outPath string) (string, error) {
	out, err := Create(outPath)
	if err != nil {
		return "", err
	}
	h := make(mergeHeap, 0, len(paths))
	for i, p := range paths {
		rd, err := Open(p)
		if err != nil {
			out.Close()
			return "", err
		}
		ch := rd.Scan()
		if rec, ok := <-ch; ok {
			h = append(h, &heapItem{rec: rec, ch: ch, index: i})
		}
	}
	heap.Init(&h)
	for h.Len() > 0 {
		item := heap.Pop(&h).(*heapItem)
		if err := out.Put(*item.rec); err != nil {
			out.Close()
			return "", err
		}
		if rec, ok := <-item.ch; ok {
			item.rec = rec
			heap.Push(&h, item)
		}
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

func zigzagEncode(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func zigzagDecode(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
