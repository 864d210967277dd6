package sun

import "sunnyway/internal/graph"

// CostCache memoizes Factor per edge for one solar position and preference.
// It belongs to a single worker and is not safe for concurrent use.
//
// Go Learning Note — Epoch Stamps Instead of Clearing:
// Reset is called once per static solve, and re-planning searches call it
// many times per request. Rather than refilling an edge-sized slice each
// time, every slot remembers the epoch it was written in; bumping the epoch
// invalidates the whole cache in O(1).
type CostCache struct {
	factors []float64
	stamps  []uint32
	epoch   uint32

	pos          Position
	preferShadow bool
	maxFactor    float64
	sunUp        bool
}

// NewCostCache returns a cache for a graph with edgeCount edges. It must be
// Reset before use.
func NewCostCache(edgeCount int) *CostCache {
	return &CostCache{
		factors: make([]float64, edgeCount),
		stamps:  make([]uint32, edgeCount),
	}
}

// Reset drops every memoized factor and rebinds the cache.
func (c *CostCache) Reset(pos Position, preferShadow bool, maxFactor float64) {
	c.epoch++
	if c.epoch == 0 {
		for i := range c.stamps {
			c.stamps[i] = 0
		}
		c.epoch = 1
	}
	c.pos = pos
	c.preferShadow = preferShadow
	c.maxFactor = maxFactor
	c.sunUp = pos.IsSunUp()
}

// SunUp reports whether the bound position casts shadows.
func (c *CostCache) SunUp() bool { return c.sunUp }

// Position returns the bound solar position.
func (c *CostCache) Position() Position { return c.pos }

// Factor returns the exposure factor of e, computing it on first use. It is
// 1 for every edge while the sun is down.
func (c *CostCache) Factor(e *graph.Edge) float64 {
	if !c.sunUp {
		return 1
	}
	if c.stamps[e.ID] == c.epoch {
		return c.factors[e.ID]
	}
	f := Factor(c.pos, e.Direction, e.LeftShadow, e.RightShadow, c.preferShadow, c.maxFactor)
	c.factors[e.ID] = f
	c.stamps[e.ID] = c.epoch
	return f
}

// Cost returns the weighted length of e.
func (c *CostCache) Cost(e *graph.Edge) float64 {
	return c.Factor(e) * e.Distance
}

// ComputedFactor returns the factor memoized for edge id since the last
// Reset, if any.
func (c *CostCache) ComputedFactor(id int) (float64, bool) {
	if !c.sunUp {
		return 1, true
	}
	if c.stamps[id] != c.epoch {
		return 0, false
	}
	return c.factors[id], true
}
