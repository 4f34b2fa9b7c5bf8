package corpus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/armon/go-radix"

	"github.com/ZanzyTHEbar/sourced-text/stext/encoding"
)

// RegistryStats tracks usage metrics for the source registry
type RegistryStats struct {
	TotalSources  int64
	Lookups       int64
	PrefixLookups int64
	Insertions    int64
	Deletions     int64
	mu            sync.RWMutex
}

// SourceRegistry provides O(k) name lookups over registered sources using a
// compressed trie (patricia tree), where k is the length of the name being
// searched. A corpus keyed by filenames can resolve any document or a whole
// name prefix (e.g. a directory of transcripts) without scanning.
type SourceRegistry struct {
	tree    *radix.Tree    // Core patricia tree for name storage
	mu      sync.RWMutex   // Read-write mutex for concurrent access
	stats   *RegistryStats // Usage tracking
	sources map[string]encoding.Source
}

// NewSourceRegistry creates a new patricia tree-based source registry
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		tree:    radix.New(),
		stats:   &RegistryStats{},
		sources: make(map[string]encoding.Source),
	}
}

// Insert registers a source under its name. Re-inserting a name overwrites
// the previous entry.
func (r *SourceRegistry) Insert(src encoding.Source) error {
	if src == nil {
		return fmt.Errorf("invalid input: source cannot be nil")
	}
	if src.Name() == "" {
		return fmt.Errorf("invalid input: source name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, updated := r.tree.Insert(src.Name(), src)
	r.sources[src.Name()] = src

	r.stats.mu.Lock()
	if !updated {
		r.stats.TotalSources++
	}
	r.stats.Insertions++
	r.stats.mu.Unlock()

	slog.Debug("Source registry insertion completed",
		"name", src.Name(),
		"was_update", updated,
		"total_sources", r.stats.TotalSources)

	return nil
}

// Lookup finds a source by its exact name
func (r *SourceRegistry) Lookup(name string) (encoding.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, found := r.tree.Get(name)

	r.stats.mu.Lock()
	r.stats.Lookups++
	r.stats.mu.Unlock()

	if !found {
		slog.Debug("Source lookup miss", "name", name)
		return nil, false
	}

	return value.(encoding.Source), true
}

// PrefixLookup finds all sources whose names start with the given prefix,
// in lexical name order
func (r *SourceRegistry) PrefixLookup(prefix string) []encoding.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []encoding.Source
	r.tree.WalkPrefix(prefix, func(key string, value interface{}) bool {
		if src, ok := value.(encoding.Source); ok {
			results = append(results, src)
		}
		return false // Continue walking
	})

	r.stats.mu.Lock()
	r.stats.PrefixLookups++
	r.stats.mu.Unlock()

	slog.Debug("Prefix lookup completed",
		"prefix", prefix,
		"results_count", len(results))

	return results
}

// Remove deletes a source from the registry
func (r *SourceRegistry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, deleted := r.tree.Delete(name)
	if deleted {
		delete(r.sources, name)
	}

	r.stats.mu.Lock()
	if deleted {
		r.stats.TotalSources--
	}
	r.stats.Deletions++
	r.stats.mu.Unlock()

	return deleted
}

// Len returns the number of registered sources
func (r *SourceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Len()
}

// Names returns the registered source names in lexical order.
func (r *SourceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	r.tree.Walk(func(key string, value interface{}) bool {
		names = append(names, key)
		return false
	})
	return names
}

// Validate performs consistency checks between the patricia tree, the name
// map and the stats counters, returning all errors found
func (r *SourceRegistry) Validate() []error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errors []error

	// Check that every tree entry has a matching map entry of the right type
	treeCount := 0
	r.tree.Walk(func(key string, value interface{}) bool {
		treeCount++

		src, exists := r.sources[key]
		if !exists {
			errors = append(errors, fmt.Errorf("tree entry %s missing from source map", key))
			return false
		}

		treeSrc, ok := value.(encoding.Source)
		if !ok {
			errors = append(errors, fmt.Errorf("tree entry %s has invalid value type", key))
			return false
		}

		if treeSrc != src {
			errors = append(errors, fmt.Errorf("tree entry %s disagrees with source map", key))
		}
		return false
	})

	// Check map entries against the tree
	for name := range r.sources {
		if _, found := r.tree.Get(name); !found {
			errors = append(errors, fmt.Errorf("source map entry %s missing from tree", name))
		}
	}

	// Check counts
	if treeCount != r.tree.Len() {
		errors = append(errors, fmt.Errorf("tree walk count %d != tree len %d", treeCount, r.tree.Len()))
	}
	if treeCount != len(r.sources) {
		errors = append(errors, fmt.Errorf("tree count %d != source map count %d", treeCount, len(r.sources)))
	}

	r.stats.mu.RLock()
	statsTotal := r.stats.TotalSources
	r.stats.mu.RUnlock()
	if int64(treeCount) != statsTotal {
		errors = append(errors, fmt.Errorf("tree count %d != stats count %d", treeCount, statsTotal))
	}

	if len(errors) > 0 {
		slog.Warn("Source registry validation failed", "error_count", len(errors))
	} else {
		slog.Debug("Source registry validation passed", "total_sources", treeCount)
	}

	return errors
}

// Stats returns a snapshot of the registry's usage counters
func (r *SourceRegistry) Stats() RegistryStats {
	r.stats.mu.RLock()
	defer r.stats.mu.RUnlock()
	return RegistryStats{
		TotalSources:  r.stats.TotalSources,
		Lookups:       r.stats.Lookups,
		PrefixLookups: r.stats.PrefixLookups,
		Insertions:    r.stats.Insertions,
		Deletions:     r.stats.Deletions,
	}
}
