package overlapstore

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "shard0")

	want := []Record{
		{AID: 1, BID: 2, AStart: 0, AEnd: 100, BStart: 0, BEnd: 104, Errors: 2, MatchToEnd: true, Delta: []int32{10, -5}},
		{AID: 2, BID: 3, AStart: 0, AEnd: 50, BStart: 0, BEnd: 50, Errors: 0, MatchToEnd: true, Delta: nil},
		{AID: 3, BID: 9, AStart: 5, AEnd: 205, BStart: 0, BEnd: 198, Errors: 7, MatchToEnd: false, Delta: []int32{3, -8, 12}},
	}

	w, err := Create(path)
	if err != nil {
		test.Fatal(err)
	}
	for _, rec := range want {
		if err := w.Put(rec); err != nil {
			test.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		test.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		test.Fatal(err)
	}
	got := make([]*Record, 0, len(want))
	for rec := range r.Scan() {
		got = append(got, rec)
	}
	if len(got) != len(want) {
		test.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, rec := range got {
		w := want[i]
		if rec.AID != w.AID || rec.BID != w.BID || rec.AStart != w.AStart || rec.AEnd != w.AEnd ||
			rec.BStart != w.BStart || rec.BEnd != w.BEnd || rec.Errors != w.Errors || rec.MatchToEnd != w.MatchToEnd {
			test.Errorf("record %d: got %+v, want %+v", i, *rec, w)
		}
		if len(rec.Delta) != len(w.Delta) {
			test.Errorf("record %d: delta length got %d, want %d", i, len(rec.Delta), len(w.Delta))
			continue
		}
		for j := range rec.Delta {
			if rec.Delta[j] != w.Delta[j] {
				test.Errorf("record %d delta[%d]: got %d, want %d", i, j, rec.Delta[j], w.Delta[j])
			}
		}
	}
}

func TestManifestRoundTrip(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "manifest.txt")
	shards := []string{"shard0", "shard1", "shard2"}
	if err := WriteManifest(path, shards); err != nil {
		test.Fatal(err)
	}
	m, err := ReadManifest(path)
	if err != nil {
		test.Fatal(err)
	}
	if len(m.Shards) != len(shards) {
		test.Fatalf("got %d shards, want %d", len(m.Shards), len(shards))
	}
	for i, s := range shards {
		if m.Shards[i] != s {
			test.Errorf("shard %d: got %s, want %s", i, m.Shards[i], s)
		}
	}
}

func TestMergeOrdersByID(test *testing.T) {
	dir := test.TempDir()
	shardA := filepath.Join(dir, "a")
	shardB := filepath.Join(dir, "b")

	writeShard(test, shardA, []Record{
		{AID: 0, BID: 1, AEnd: 10, BEnd: 10, MatchToEnd: true},
		{AID: 2, BID: 5, AEnd: 10, BEnd: 10, MatchToEnd: true},
	})
	writeShard(test, shardB, []Record{
		{AID: 1, BID: 0, AEnd: 10, BEnd: 10, MatchToEnd: true},
		{AID: 3, BID: 0, AEnd: 10, BEnd: 10, MatchToEnd: true},
	})

	outPath, err := Merge([]string{shardA, shardB}, filepath.Join(dir, "merged"))
	if err != nil {
		test.Fatal(err)
	}
	r, err := Open(outPath)
	if err != nil {
		test.Fatal(err)
	}
	var ids []uint64
	for rec := range r.Scan() {
		ids = append(ids, rec.ID())
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] < ids[i-1] {
			test.Fatalf("merged output not sorted at index %d: %v", i, ids)
		}
	}
	if len(ids) != 4 {
		test.Fatalf("got %d merged records, want 4", len(ids))
	}
}

func writeShard(test *testing.T, path string, recs []Record) {
	w, err := Create(path)
	if err != nil {
		test.Fatal(err)
	}
	for _, rec := range recs {
		if err := w.Put(rec); err != nil {
			test.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		test.Fatal(err)
	}
}

