// Package tracker keeps the best-known gene of an optimization run and a
// per-generation history of its progress.
package tracker

import (
	"time"

	"k8s.io/utils/clock"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Snapshot is the record of one completed generation. Snapshots are never
// modified after they are recorded.
type Snapshot struct {
	Generation     int
	BestGene       framework.Gene
	BestFitness    float64
	AverageFitness float64
	AverageDiff    float64
	Timestamp      time.Time
}

// Series is the history split into plot-ready columns.
type Series struct {
	Generations []int
	Best        []float64
	Average     []float64
	Diversity   []float64
}

// Tracker is not safe for concurrent use.
type Tracker struct {
	clock     clock.PassiveClock
	startedAt time.Time
	best      framework.Gene
	hasBest   bool
	history   []Snapshot
}

// New returns a tracker stamping snapshots with c. A nil clock uses the
// wall clock.
func New(c clock.PassiveClock) *Tracker {
	if c == nil {
		c = clock.RealClock{}
	}
	t := &Tracker{clock: c}
	t.Reset()
	return t
}

// Reset forgets the best-known gene and the history.
func (t *Tracker) Reset() {
	t.best = framework.Gene{}
	t.hasBest = false
	t.history = nil
	t.startedAt = t.clock.Now()
}

// Observe offers a candidate for best-known. It is adopted only when it is
// strictly fitter than the current one. Unevaluated genes are ignored.
func (t *Tracker) Observe(candidate framework.Gene) (improved bool, previous float64) {
	fitness, ok := candidate.Score()
	if !ok {
		return false, 0
	}
	if t.hasBest {
		previous, _ = t.best.Score()
		if fitness >= previous {
			return false, previous
		}
	}
	t.best = candidate.DeepCopy()
	t.hasBest = true
	return true, previous
}

// Record appends a snapshot for the next generation.
func (t *Tracker) Record(best framework.Gene, averageFitness, averageDiff float64) Snapshot {
	fitness, _ := best.Score()
	s := Snapshot{
		Generation:     len(t.history),
		BestGene:       best.DeepCopy(),
		BestFitness:    fitness,
		AverageFitness: averageFitness,
		AverageDiff:    averageDiff,
		Timestamp:      t.clock.Now(),
	}
	t.history = append(t.history, s)
	return s
}

// Best returns a copy of the best-known gene.
func (t *Tracker) Best() (framework.Gene, bool) {
	if !t.hasBest {
		return framework.Gene{}, false
	}
	return t.best.DeepCopy(), true
}

// History returns the recorded snapshots in generation order. The genes
// inside are shared with the tracker and must not be modified.
func (t *Tracker) History() []Snapshot {
	out := make([]Snapshot, len(t.history))
	copy(out, t.history)
	return out
}

// Latest returns the most recent snapshot.
func (t *Tracker) Latest() (Snapshot, bool) {
	if len(t.history) == 0 {
		return Snapshot{}, false
	}
	return t.history[len(t.history)-1], true
}

func (t *Tracker) Generations() int { return len(t.history) }

// Elapsed is the time since the last Reset.
func (t *Tracker) Elapsed() time.Duration { return t.clock.Since(t.startedAt) }

// Series returns the history as parallel columns.
func (t *Tracker) Series() Series {
	return SeriesOf(t.history)
}

// SeriesOf splits snapshots into parallel columns.
func SeriesOf(history []Snapshot) Series {
	s := Series{
		Generations: make([]int, len(history)),
		Best:        make([]float64, len(history)),
		Average:     make([]float64, len(history)),
		Diversity:   make([]float64, len(history)),
	}
	for i, snap := range history {
		s.Generations[i] = snap.Generation
		s.Best[i] = snap.BestFitness
		s.Average[i] = snap.AverageFitness
		s.Diversity[i] = snap.AverageDiff
	}
	return s
}
