//Package evalue is the compact, append-only side file of per-overlap
//error rates, zstd-compressed in fixed-size blocks.
package evalue

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"
)

type Entry struct {
	OverlapID uint64
	ErrorRate float32
}

const entrySize = 8 + 4

//large enough to amortize zstd's frame overhead, small enough that a
//crash loses at most one block
const blockSize = 4096

type Writer struct {
	f   *os.File
	enc *zstd.Encoder
	buf []byte
}

func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("evalue: create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("evalue: new zstd encoder: %w", err)
	}
	return &Writer{f: f, enc: enc, buf: make([]byte, 0, blockSize*entrySize)}, nil
}

func (w *Writer) Put(e Entry) error {
	var rec [entrySize]byte
	binary.LittleEndian.PutUint64(rec[0:8], e.OverlapID)
	binary.LittleEndian.PutUint32(rec[8:12], math.Float32bits(e.ErrorRate))
	w.buf = append(w.buf, rec[:]...)
	if len(w.buf) >= blockSize*entrySize {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	if _, err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("evalue: write block: %w", err)
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("evalue: flush block: %w", err)
	}
	w.buf = w.buf[:0]
	return nil
}

func (w *Writer) Close() error {
	if err := w.flush(); err != nil {
		w.enc.Close()
		w.f.Close()
		return err
	}
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("evalue: close zstd encoder: %w", err)
	}
	return w.f.Close()
}

type Reader struct {
	f   *os.File
	dec *zstd.Decoder
	r   *bufio.Reader
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evalue: open %s: %w", path, err)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("evalue: new zstd decoder: %w", err)
	}
	return &Reader{f: f, dec: dec, r: bufio.NewReader(dec)}, nil
}

func (r *Reader) Next() (Entry, error) {
	var rec [entrySize]byte
	if _, err := io.ReadFull(r.r, rec[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return Entry{}, err
	}
	return Entry{
		OverlapID: binary.LittleEndian.Uint64(rec[0:8]),
		ErrorRate: math.Float32frombits(binary.LittleEndian.Uint32(rec[8:12])),
	}, nil
}

func (r *Reader) All() ([]Entry, error) {
	defer r.Close()
	var out []Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}

func (r *Reader) Close() error {
	r.dec.Close()
	return r.f.Close()
}

func Merge(paths []string, outPath string) (string, error) {
	var all []Entry
	for _, p := range paths {
		rd, err := Open(p)
		if err != nil {
			return "", err
		}
		entries, err := rd.All()
		if err != nil {
			return "", fmt.Errorf("evalue: reading %s: %w", p, err)
		}
		all = append(all, entries...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OverlapID < all[j].OverlapID })

	w, err := Create(outPath)
	if err != nil {
		return "", err
	}
	for _, e := range all {
		if err := w.Put(e); err != nil {
			w.Close()
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}
