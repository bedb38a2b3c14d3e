package cauldron

import "sort"

// BindingQuery defines criteria for querying binding snapshots.
type BindingQuery struct {
	// Lifecycle filters by "shared" or "transient". Empty matches all.
	Lifecycle string

	// Resolved filters by whether a shared instance has been materialized.
	// nil matches all bindings.
	Resolved *bool

	// DependsOn filters to bindings whose resolved dependency list includes
	// the given abstract key. Empty matches all.
	DependsOn string
}

// Query returns snapshots of all bindings matching the criteria, sorted by
// abstract key.
//
// Example:
//
//	resolved := true
//	stale := cauldron.Query(c, cauldron.BindingQuery{
//	    Lifecycle: "shared",
//	    Resolved:  &resolved,
//	})
func Query(c *Container, query BindingQuery) []BindingSnapshot {
	var results []BindingSnapshot

	for _, snapshot := range c.Snapshots() {
		if query.Lifecycle != "" && snapshot.Lifecycle != query.Lifecycle {
			continue
		}

		if query.Resolved != nil && snapshot.Resolved != *query.Resolved {
			continue
		}

		if query.DependsOn != "" && !dependsOn(snapshot, query.DependsOn) {
			continue
		}

		results = append(results, snapshot)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Abstract < results[j].Abstract
	})

	return results
}

func dependsOn(snapshot BindingSnapshot, abstract string) bool {
	for _, dep := range snapshot.Dependencies {
		if dep.Kind == ClassDependency && dep.Class == abstract {
			return true
		}
	}

	return false
}
