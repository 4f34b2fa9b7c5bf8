package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	internal "github.com/ZanzyTHEbar/sourced-text/stext"
	"github.com/ZanzyTHEbar/sourced-text/stext/encoding"

	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sourcegraph/conc/pool"
)

// Corpus is an ordered set of sources loaded from a directory tree. Document
// ids assigned downstream by corpus.FromSources correspond to positions in
// Sources, so the ordering is part of the contract: paths are sorted for
// deterministic ids across runs.
type Corpus struct {
	ID      uuid.UUID
	Root    string
	Sources []encoding.Source
	Paths   []string // canonicalized, relative to Root, same order as Sources
}

// DirLoader reads every regular file under a root directory into a
// TextSource. A gitignore-style ignore file at the root (see
// internal.DefaultIgnoreFileName) excludes paths from the corpus. Loading is
// a one-shot synchronous operation: any file failing to read or decode
// aborts the whole load, matching the no-partial-construction rule of the
// encoding layer.
type DirLoader struct {
	mode          encoding.Mode
	maxWorkers    int
	log           zerolog.Logger
	AssertHandler *assert.AssertHandler
}

// NewDirLoader creates a loader encoding files in the given mode with at
// most maxWorkers concurrent file encodes.
func NewDirLoader(mode encoding.Mode, maxWorkers int) *DirLoader {
	if maxWorkers < 1 {
		maxWorkers = internal.DefaultMaxWorkers
	}
	return &DirLoader{
		mode:          mode,
		maxWorkers:    maxWorkers,
		log:           internal.GetLogger(),
		AssertHandler: assert.NewAssertHandler(),
	}
}

// LoadDir builds a Corpus from all non-ignored regular files under root.
func (l *DirLoader) LoadDir(ctx context.Context, root string) (*Corpus, error) {
	canonicalRoot := canonicalize(root)

	var ignored *ignore.GitIgnore
	ignorePath := filepath.Join(root, internal.DefaultIgnoreFileName)
	if _, err := os.Stat(ignorePath); err == nil {
		ig, err := ignore.CompileIgnoreFile(ignorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to compile ignore file %s: %w", ignorePath, err)
		}
		ignored = ig
	}

	var rels []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = canonicalize(rel)
		if rel == internal.DefaultIgnoreFileName {
			return nil
		}
		if ignored != nil && ignored.MatchesPath(rel) {
			slog.Debug("Skipping ignored file", "path", rel)
			return nil
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus root %s: %w", root, err)
	}

	// Stable ordering for deterministic document ids
	sort.Strings(rels)
	l.AssertHandler.Assert(ctx, sort.StringsAreSorted(rels),
		"corpus paths must be sorted for deterministic document ids")

	sources := make([]encoding.Source, len(rels))
	p := pool.New().WithMaxGoroutines(l.maxWorkers).WithContext(ctx)
	for i, rel := range rels {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := encoding.FromFile(filepath.Join(root, filepath.FromSlash(rel)), l.mode)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load corpus from %s: %w", root, err)
	}

	for i, src := range sources {
		l.AssertHandler.Assert(ctx, src != nil,
			fmt.Sprintf("encoded source missing for %s", rels[i]))
	}

	corpus := &Corpus{
		ID:      uuid.New(),
		Root:    canonicalRoot,
		Sources: sources,
		Paths:   rels,
	}

	l.log.Info().
		Str("root", canonicalRoot).
		Str("corpus_id", corpus.ID.String()).
		Int("documents", len(sources)).
		Str("mode", l.mode.String()).
		Msg("corpus load completed")

	return corpus, nil
}

func canonicalize(p string) string {
	// Convert backslashes to forward slashes and clean components.
	p = strings.ReplaceAll(p, "\\", "/")
	// filepath.Clean preserves platform separators; convert after cleaning.
	p = filepath.ToSlash(filepath.Clean(p))
	// Drop trailing slash except for root
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
