package nickname

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/nameprep/internal/domain/dedupe"
	"github.com/okian/nameprep/internal/domain/model"
	"github.com/okian/nameprep/internal/domain/textnorm"
	"github.com/okian/nameprep/pkg/logger"
	"github.com/okian/nameprep/pkg/metrics"
)

// Default builder thresholds. They calibrate how specific a name-to-group
// link must be before it is trusted.
const (
	DefaultMinCondProb       = 0.3
	DefaultMinGroupCount     = 5
	DefaultMinGroupLen       = 3
	DefaultMaxCollapsePasses = 10
)

// Drop-stage labels reported per discarded observation.
const (
	stageUnusable      = "unusable"
	stageMultiWord     = "multi_word"
	stageDuplicate     = "duplicate"
	stageShortGroup    = "short_group"
	stageLowSupport    = "low_support"
	stageLowConfidence = "low_confidence"
	stageOutranked     = "outranked"
	stageLoop          = "loop"
	stageSelfMapping   = "self_mapping"
)

// candidate is one surviving observation for a raw name before best-link
// selection.
type candidate struct {
	group string
	prob  float64
}

// edge is the single outgoing link of a raw name in the nickname graph.
// support carries the stage-time observation count of the target group.
type edge struct {
	group   string
	prob    float64
	support int
}

// Builder turns a noisy alias corpus into a Table satisfying the lookup
// invariants: one group per name, no self-mappings, no loops, no chains.
type Builder struct {
	minCondProb       float64
	minGroupCount     int
	minGroupLen       int
	maxCollapsePasses int

	deduper dedupe.Deduper
	logger  logger.Logger
}

// NewBuilder creates a Builder with default thresholds.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		minCondProb:       DefaultMinCondProb,
		minGroupCount:     DefaultMinGroupCount,
		minGroupLen:       DefaultMinGroupLen,
		maxCollapsePasses: DefaultMaxCollapsePasses,
		deduper:           dedupe.NewInMemoryDeduper(),
		logger:            logger.Get().Named("nickname-builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the full pipeline over the raw corpus and returns the verified
// lookup table. Any violated postcondition aborts the build with
// ErrDataIntegrity; no partial table is ever returned.
func (b *Builder) Build(ctx context.Context, observations []model.RawObservation) (*Table, error) {
	drops := make(map[string]int)
	drop := func(stage string, n int) {
		drops[stage] += n
		metrics.RecordObservationsDropped(stage, n)
	}

	// Stage 1-2: normalize, reject multi-word raw names, strip spaces from
	// groups, discard duplicated observations and too-short groups.
	candidates := make(map[string][]candidate)
	kept := 0
	for _, obs := range observations {
		raw := textnorm.Normalize(obs.RawName, true)
		group := textnorm.Normalize(obs.NameGroup, true)
		if raw == "" || group == "" {
			drop(stageUnusable, 1)
			continue
		}
		if strings.Contains(raw, " ") {
			// Only single tokens are aliased; the pipeline keys its lookup
			// on the first given-name word.
			drop(stageMultiWord, 1)
			continue
		}
		group = strings.ReplaceAll(group, " ", "")
		if b.deduper.SeenAndRecord(ctx, raw+"\x00"+group) {
			drop(stageDuplicate, 1)
			continue
		}
		if len(group) < b.minGroupLen {
			drop(stageShortGroup, 1)
			continue
		}
		candidates[raw] = append(candidates[raw], candidate{group: group, prob: obs.CondProb})
		kept++
	}

	// Stage 3: groups backed by too few observations are noise. Support is
	// counted here, before the confidence filter, and reused for loop
	// resolution below.
	support := make(map[string]int)
	for _, cands := range candidates {
		for _, c := range cands {
			support[c.group]++
		}
	}
	b.filterCandidates(candidates, func(c candidate) bool { return support[c.group] >= b.minGroupCount }, stageLowSupport, drop)

	// Stage 4: discard unlikely pairings.
	b.filterCandidates(candidates, func(c candidate) bool { return c.prob >= b.minCondProb }, stageLowConfidence, drop)

	// Stage 5: one outgoing edge per raw name. Highest probability wins;
	// ties go to the lexicographically smallest group so builds are stable.
	graph := make(map[string]edge, len(candidates))
	for raw, cands := range candidates {
		best := cands[0]
		for _, c := range cands[1:] {
			if c.prob > best.prob || (c.prob == best.prob && c.group < best.group) {
				best = c
			}
		}
		if n := len(cands) - 1; n > 0 {
			drop(stageOutranked, n)
		}
		graph[raw] = edge{group: best.group, prob: best.prob, support: support[best.group]}
	}

	// Stage 6: resolve two-node loops toward the better-supported group.
	b.resolveLoops(graph, support, drop)

	// Stage 7: collapse chains until no target is also a source.
	if err := b.collapseChains(graph, support); err != nil {
		return nil, err
	}

	// Stage 8: a chain may resolve back to its own start; those rows carry
	// no information.
	for raw, e := range graph {
		if raw == e.group {
			delete(graph, raw)
			drop(stageSelfMapping, 1)
		}
	}

	if err := b.verify(graph, support); err != nil {
		return nil, err
	}

	pairs := make([]Pair, 0, len(graph))
	for raw, e := range graph {
		pairs = append(pairs, Pair{RawName: raw, NameGroup: e.group})
	}
	table, err := NewTable(pairs)
	if err != nil {
		return nil, err
	}

	metrics.UpdateTableSize(table.Len())
	b.logger.Info(ctx, "nickname table built",
		logger.Int("observations", len(observations)),
		logger.Int("candidates", kept),
		logger.Int("mappings", table.Len()),
		logger.Any("dropped", drops),
	)
	return table, nil
}

// filterCandidates keeps only candidates passing keep, dropping emptied raw
// names entirely.
func (b *Builder) filterCandidates(candidates map[string][]candidate, keep func(candidate) bool, stage string, drop func(string, int)) {
	for raw, cands := range candidates {
		filtered := cands[:0]
		for _, c := range cands {
			if keep(c) {
				filtered = append(filtered, c)
			} else {
				drop(stage, 1)
			}
		}
		if len(filtered) == 0 {
			delete(candidates, raw)
		} else {
			candidates[raw] = filtered
		}
	}
}

// resolveLoops breaks every mutual pair a->b, b->a by redirecting all edges
// into the losing group toward the winner. The winner is the target with the
// larger support count; equal support keeps the lexicographically smaller
// name. Self-edges produced by the redirect are removed.
func (b *Builder) resolveLoops(graph map[string]edge, support map[string]int, drop func(string, int)) {
	raws := make([]string, 0, len(graph))
	for raw := range graph {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	redirect := make(map[string]string)
	for _, a := range raws {
		ea := graph[a]
		other := ea.group
		back, ok := graph[other]
		if !ok || back.group != a || a > other {
			continue // not a loop, or already visited from its smaller side
		}
		winner, loser := other, a
		if support[a] > support[other] || (support[a] == support[other] && a < other) {
			winner, loser = a, other
		}
		redirect[loser] = winner
	}
	if len(redirect) == 0 {
		return
	}

	for raw, e := range graph {
		if winner, ok := redirect[e.group]; ok {
			e.group = winner
			e.support = support[winner]
			graph[raw] = e
		}
	}
	for raw, e := range graph {
		if raw == e.group {
			delete(graph, raw)
			drop(stageLoop, 1)
		}
	}
}

// collapseChains repeatedly retargets a->b to a->c while some b->c exists.
// Rewrites within one pass are simultaneous, against a snapshot of the
// successor map. Self-edges are left alone; stage 8 removes them.
func (b *Builder) collapseChains(graph map[string]edge, support map[string]int) error {
	for pass := 0; pass < b.maxCollapsePasses; pass++ {
		next := make(map[string]string, len(graph))
		for raw, e := range graph {
			if raw != e.group {
				next[raw] = e.group
			}
		}

		changed := false
		for raw, e := range graph {
			if raw == e.group {
				continue
			}
			if target, ok := next[e.group]; ok {
				e.group = target
				e.support = support[target]
				graph[raw] = e
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
	if b.hasChains(graph) {
		return fmt.Errorf("%w within %d passes", ErrNotConverged, b.maxCollapsePasses)
	}
	return nil
}

// hasChains reports whether any edge's target is itself the source of a
// non-self edge.
func (b *Builder) hasChains(graph map[string]edge) bool {
	for raw, e := range graph {
		if raw == e.group {
			continue
		}
		if onward, ok := graph[e.group]; ok && onward.group != e.group {
			return true
		}
	}
	return false
}

// verify asserts every postcondition of the build. A violation means the
// artifact must not be published.
func (b *Builder) verify(graph map[string]edge, support map[string]int) error {
	for raw, e := range graph {
		switch {
		case strings.Contains(raw, " ") || strings.Contains(e.group, " "):
			return fmt.Errorf("%w: %q -> %q contains a space", ErrDataIntegrity, raw, e.group)
		case e.prob < b.minCondProb:
			return fmt.Errorf("%w: %q -> %q below probability threshold", ErrDataIntegrity, raw, e.group)
		case support[e.group] < b.minGroupCount:
			return fmt.Errorf("%w: group %q below support threshold", ErrDataIntegrity, e.group)
		case len(e.group) < b.minGroupLen:
			return fmt.Errorf("%w: group %q below length threshold", ErrDataIntegrity, e.group)
		case raw == e.group:
			return fmt.Errorf("%w: %q maps to itself", ErrDataIntegrity, raw)
		}
		if onward, ok := graph[e.group]; ok {
			if onward.group == raw {
				return fmt.Errorf("%w: loop between %q and %q", ErrDataIntegrity, raw, e.group)
			}
			return fmt.Errorf("%w: chain %q -> %q -> %q", ErrDataIntegrity, raw, e.group, onward.group)
		}
	}
	return nil
}
