package seqio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFasta(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "reads.fasta")
	content := ">read1\nACGTACGTACGT\n>read2\nTTTTGGGGCCCC\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatal(err)
	}

	set, err := Open(path)
	if err != nil {
		test.Fatal(err)
	}
	if set.Size() != 2 {
		test.Fatalf("got %d records, want 2", set.Size())
	}
	id, ok := set.ID("read2")
	if !ok {
		test.Fatal("read2 not found by name")
	}
	if got := string(set.Bases(id)); got != "TTTTGGGGCCCC" {
		test.Errorf("got bases %q, want TTTTGGGGCCCC", got)
	}
}

func TestTrimWindow(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "reads.fasta")
	content := ">read1\nACGTACGTACGT\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatal(err)
	}
	set, err := Open(path)
	if err != nil {
		test.Fatal(err)
	}
	set.SetFrontTrim(0, 4)
	set.SetBackTrim(0, 2)
	if got := string(set.Bases(0)); got != "ACGTAC" {
		test.Errorf("got %q, want ACGTAC", got)
	}
	if set.Len(0) != 6 {
		test.Errorf("got length %d, want 6", set.Len(0))
	}
}

func TestEachSkipsIgnored(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "reads.fasta")
	content := ">read1\nACGT\n>read2\nTTTT\n>read3\nGGGG\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatal(err)
	}
	set, err := Open(path)
	if err != nil {
		test.Fatal(err)
	}
	set.SetIgnore(1, true)
	var seen []int
	set.Each(func(id int) { seen = append(seen, id) })
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 2 {
		test.Errorf("got %v, want [0 2]", seen)
	}
}
