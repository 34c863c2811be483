package engine

import (
	"sort"

	"github.com/lixenwraith/tabletop/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection.
// The query starts from the smallest store and filters through larger ones.
type QueryBuilder struct {
	world    *World
	stores   []QueryableStore
	without  []QueryableStore
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder for finding entities with specific component combinations.
//
// Example:
//
//	cards := world.Query().
//	    With(cardStore).
//	    With(transformStore).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a component store to the query filter.
// Panics if called after Execute().
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Without excludes entities present in store.
// Panics if called after Execute().
func (qb *QueryBuilder) Without(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.without = append(qb.without, store)
	return qb
}

// Execute runs the query and returns all entities that have components in all With stores
// and none of the Without stores. Results keep the smallest store's insertion order.
// Calling Execute() multiple times returns the cached result.
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	// Stable so equal-sized stores keep declaration order
	sort.SliceStable(qb.stores, func(i, j int) bool {
		return qb.stores[i].Count() < qb.stores[j].Count()
	})

	candidates := qb.stores[0].All()
	filtered := candidates[:0]
	for _, e := range candidates {
		if qb.matches(e) {
			filtered = append(filtered, e)
		}
	}

	qb.results = filtered
	return qb.results
}

func (qb *QueryBuilder) matches(e core.Entity) bool {
	for _, store := range qb.stores[1:] {
		if !store.Has(e) {
			return false
		}
	}
	for _, store := range qb.without {
		if store.Has(e) {
			return false
		}
	}
	return true
}
