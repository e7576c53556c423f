package main

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/service"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <samples.csv>",
	Short: "Recommend crops for a CSV of soil and weather samples",
	Long:  "Reads a CSV with columns N,P,K,temperature,humidity,ph,rainfall (header row required) and emits one recommendation per row, in input order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := newAdvisor(cfg)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrap(err, "batch: open samples")
		}
		defer f.Close()

		samples, err := readSamples(f)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		results, err := runBatch(cmd, advisor, samples, concurrency)
		if err != nil {
			return err
		}
		return printJSON(cmd, results)
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max samples in flight (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// sampleColumns is the required CSV header, matched case-insensitively.
var sampleColumns = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// readSamples parses one sample per data row. Malformed numeric cells
// coerce to zero rather than failing the whole file.
func readSamples(r io.Reader) ([]engine.Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read header")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range sampleColumns {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			return nil, eris.Errorf("batch: missing column %q", col)
		}
	}

	cell := func(row []string, col string) float64 {
		i := idx[strings.ToLower(col)]
		if i >= len(row) {
			return 0
		}
		return engine.Coerce(row[i])
	}

	var samples []engine.Sample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "batch: read row")
		}
		samples = append(samples, engine.Sample{
			N:           cell(row, "N"),
			P:           cell(row, "P"),
			K:           cell(row, "K"),
			Temperature: cell(row, "temperature"),
			Humidity:    cell(row, "humidity"),
			PH:          cell(row, "ph"),
			Rainfall:    cell(row, "rainfall"),
		})
	}
	return samples, nil
}

// batchResult pairs a recommendation with its input row number.
type batchResult struct {
	Row            int                   `json:"row"`
	Recommendation engine.Recommendation `json:"recommendation"`
}

func runBatch(cmd *cobra.Command, advisor service.Advisor, samples []engine.Sample, concurrency int) ([]batchResult, error) {
	if len(samples) == 0 {
		zap.L().Info("no samples to process")
		return []batchResult{}, nil
	}

	zap.L().Info("processing batch",
		zap.Int("samples", len(samples)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]batchResult, len(samples))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	for i, sample := range samples {
		g.Go(func() error {
			rec, err := advisor.Recommend(gctx, sample)
			if err != nil {
				return eris.Wrapf(err, "batch: row %d", i+1)
			}
			results[i] = batchResult{Row: i + 1, Recommendation: rec}
			done.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("batch complete", zap.Int64("samples", done.Load()))
	return results, nil
}
