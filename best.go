package msximg

import (
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/bodgit/msximg/compressor"
)

// Result is the outcome of exporting with one compressor.
type Result struct {
	Compressor compressor.Compressor
	// Size is the number of bytes written, only valid when Err is nil
	Size int
	Err  error
}

// Benchmark measures every candidate compressor. Incompatible candidates
// are reported with the reason they were skipped. The results are in the
// same order as the candidates.
func (p *Plan) Benchmark(candidates []compressor.Compressor) []Result {
	results := make([]Result, len(candidates))

	var g errgroup.Group
	for i, c := range candidates {
		i, c := i, c
		results[i].Compressor = c
		if err := p.Compatible(c); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			results[i].Size, results[i].Err = p.Measure(c)
			return nil
		})
	}
	// Each pass reports through its own result
	g.Wait()

	return results
}

// Best returns the compressor producing the least data. Ties go to the
// first one in the list of candidates and None is returned if every
// candidate failed.
func (p *Plan) Best(logger *log.Logger) compressor.Compressor {
	logger.Println("Looking for the best compressor")

	best, size := compressor.None, -1
	for _, r := range p.Benchmark(compressor.Candidates) {
		if r.Err != nil {
			logger.Printf("- %s: %v\n", r.Compressor, r.Err)
			continue
		}
		logger.Printf("- %s: %d bytes\n", r.Compressor, r.Size)
		if size < 0 || r.Size < size {
			best, size = r.Compressor, r.Size
		}
	}

	logger.Printf("Best compressor: %s\n", best)

	return best
}
