package main

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KaiqiangLiu/canu/config"
	"github.com/KaiqiangLiu/canu/editdist"
	"github.com/KaiqiangLiu/canu/evalue"
	"github.com/KaiqiangLiu/canu/overlapstore"
	"github.com/KaiqiangLiu/canu/seqio"
)

func newCorrectCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	cc := &cobra.Command{
		Use:   "correct",
		Short: "Recompute overlap alignments with the banded prefix edit-distance kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindCorrectFlags(cmd, v)
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return runCorrect(cfg)
		},
	}
	cc.Flags().StringVar(&configFile, "config", "", "Optional TOML config file")
	cc.Flags().String("input", "", "Fasta/fastq input file of reads")
	cc.Flags().String("overlap-store", "", "Overlap store manifest to correct")
	cc.Flags().String("output-store", "", "Path for the corrected overlap-store shard")
	cc.Flags().String("evalue-out", "", "Path for the evalue side file")
	cc.Flags().Int("error-budget", 32, "Per-overlap error budget E")
	cc.Flags().Int("num-workers", 4, "Number of correction worker goroutines")
	cc.Flags().Int("e-max", 1024, "Upper bound on error level the kernel will reach")
	return cc
}

func bindCorrectFlags(cmd *cobra.Command, v *viper.Viper) {
	v.BindPFlag("input", cmd.Flags().Lookup("input"))
	v.BindPFlag("overlap_store", cmd.Flags().Lookup("overlap-store"))
	v.BindPFlag("output_store", cmd.Flags().Lookup("output-store"))
	v.BindPFlag("evalue_out", cmd.Flags().Lookup("evalue-out"))
	v.BindPFlag("error_budget", cmd.Flags().Lookup("error-budget"))
	v.BindPFlag("num_workers", cmd.Flags().Lookup("num-workers"))
	v.BindPFlag("e_max", cmd.Flags().Lookup("e-max"))
}

func runCorrect(cfg config.Config) error {
	reads, err := seqio.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("correct: loading reads: %w", err)
	}

	manifest, err := overlapstore.ReadManifest(cfg.OverlapStore)
	if err != nil {
		return fmt.Errorf("correct: reading overlap store: %w", err)
	}

	out, err := overlapstore.Create(cfg.OutputStore)
	if err != nil {
		return fmt.Errorf("correct: creating output store: %w", err)
	}
	evOut, err := evalue.Create(cfg.EvalueOut)
	if err != nil {
		out.Close()
		return fmt.Errorf("correct: creating evalue file: %w", err)
	}

	candidates := make(chan *overlapstore.Record, cfg.NumWorkers*4)
	results := make(chan correctionResult, cfg.NumWorkers*4)

	var workers sync.WaitGroup
	for i := 0; i < cfg.NumWorkers; i++ {
		workers.Add(1)
		go correctWorker(cfg, reads, candidates, results, &workers)
	}

	writerDone := make(chan error, 1)
	go func() {
		writerDone <- writeResults(out, evOut, results)
	}()

	shardCount := 0
	for _, shardPath := range manifest.Shards {
		rd, err := overlapstore.Open(shardPath)
		if err != nil {
			log.Println("correct: skipping unreadable shard", shardPath, err)
			continue
		}
		for rec := range rd.Scan() {
			candidates <- rec
		}
		shardCount++
	}
	close(candidates)
	workers.Wait()
	close(results)

	if err := <-writerDone; err != nil {
		return fmt.Errorf("correct: writing results: %w", err)
	}
	fmt.Println("Corrected overlaps from", shardCount, "shards into", filepath.Base(cfg.OutputStore))
	return nil
}

type correctionResult struct {
	rec       overlapstore.Record
	errorRate float32
}

func correctWorker(cfg config.Config, reads *seqio.Set, in <-chan *overlapstore.Record, out chan<- correctionResult, wg *sync.WaitGroup) {
	defer wg.Done()
	wa, err := editdist.NewWorkArea(cfg.EditdistConfig(), cfg.Tuning())
	if err != nil {
		log.Fatal("correct: constructing work area:", err)
	}
	for rec := range in {
		if int(rec.AID) >= reads.Size() || int(rec.BID) >= reads.Size() {
			continue
		}
		a := reads.Bases(int(rec.AID))
		t := reads.Bases(int(rec.BID))
		errs, aEnd, tEnd, matchToEnd := wa.PrefixEditDist(a, t, cfg.ErrorBudget)

		delta := make([]int32, len(wa.Delta()))
		copy(delta, wa.Delta())

		corrected := overlapstore.Record{
			AID:        rec.AID,
			BID:        rec.BID,
			AStart:     0,
			AEnd:       aEnd,
			BStart:     0,
			BEnd:       tEnd,
			Errors:     errs,
			MatchToEnd: matchToEnd,
			Delta:      delta,
		}
		rate := float32(0)
		if aEnd > 0 {
			rate = float32(errs) / float32(aEnd)
		}
		out <- correctionResult{rec: corrected, errorRate: rate}
	}
}

func writeResults(store *overlapstore.Writer, ev *evalue.Writer, results <-chan correctionResult) error {
	defer store.Close()
	defer ev.Close()
	for r := range results {
		if err := store.Put(r.rec); err != nil {
			return err
		}
		if err := ev.Put(evalue.Entry{OverlapID: r.rec.ID(), ErrorRate: r.errorRate}); err != nil {
			return err
		}
	}
	return nil
}
