package gfp

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// A Loader resolves a subject reference to its TrialSet. Implementations
// are keyed by storage backend.
type Loader interface {
	// Check reports whether ref can be resolved, without loading it.
	Check(ref string) error
	// Load reads the TrialSet for ref.
	Load(ref string) (TrialSet, error)
}

// RunRefs is the low-memory variant of Run: trial data is loaded one
// subject at a time through loader instead of being held in memory up
// front. Every reference is checked before any permutation starts.
func (t *Tester) RunRefs(ctx context.Context, loader Loader, refsA, refsB []string) (*Result, error) {
	if len(refsA) != len(refsB) {
		return nil, errors.Wrapf(ErrSubjectCountMismatch, "%d vs %d subjects", len(refsA), len(refsB))
	}
	if len(refsA) == 0 {
		return nil, errors.Wrap(ErrSubjectCountMismatch, "no subjects")
	}
	for _, refs := range [][]string{refsA, refsB} {
		for _, ref := range refs {
			if err := loader.Check(ref); err != nil {
				return nil, err
			}
		}
	}
	t.warnSmall("permutations", t.NPerm)

	pairs := make([]SubjectPair, len(refsA))
	err := t.mapSubjects(ctx, len(refsA), func(s int, rng *rand.Rand) error {
		a, err := loader.Load(refsA[s])
		if err != nil {
			return errors.Wrapf(err, "subject %d condition A", s)
		}
		b, err := loader.Load(refsB[s])
		if err != nil {
			return errors.Wrapf(err, "subject %d condition B", s)
		}
		pair, err := t.Permute(a, b, rng)
		if err != nil {
			return errors.Wrapf(err, "subject %d", s)
		}
		pairs[s] = pair
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.aggregate(pairs)
}

// A FieldPath addresses a nested object field inside a data file, outermost
// key first.
type FieldPath []string

func (p FieldPath) String() string { return strings.Join(p, ".") }

// A JSONLoader reads TrialSets from JSON files under Dir. The reference is
// a filename relative to Dir, and Path addresses the 3-D
// [channel][sample][trial] array inside the document.
type JSONLoader struct {
	Dir  string
	Path FieldPath
}

// Check verifies that the referenced file exists.
func (l JSONLoader) Check(ref string) error {
	name := filepath.Join(l.Dir, ref)
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrFileNotFound, name)
		}
		return errors.Wrap(err, name)
	}
	return nil
}

// Load reads and decodes the referenced file and walks Path down to the
// trial array.
func (l JSONLoader) Load(ref string) (TrialSet, error) {
	name := filepath.Join(l.Dir, ref)
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, name)
		}
		return nil, errors.Wrap(err, name)
	}
	defer f.Close()

	var doc any
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, name)
	}
	for i, key := range l.Path {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, errors.Errorf("%s: field %q is not an object", name, l.Path[:i])
		}
		doc, ok = obj[key]
		if !ok {
			return nil, errors.Errorf("%s: no field %q", name, l.Path[:i+1])
		}
	}
	ts, err := toTrialSet(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: field %q", name, l.Path)
	}
	return ts, nil
}

func toTrialSet(v any) (TrialSet, error) {
	channels, ok := v.([]any)
	if !ok {
		return nil, errors.New("not a 3-dimensional array")
	}
	ts := make(TrialSet, len(channels))
	for c, cv := range channels {
		samples, ok := cv.([]any)
		if !ok {
			return nil, errors.Errorf("channel %d is not an array", c)
		}
		ts[c] = make([][]float64, len(samples))
		for j, jv := range samples {
			trials, ok := jv.([]any)
			if !ok {
				return nil, errors.Errorf("channel %d sample %d is not an array", c, j)
			}
			row := make([]float64, len(trials))
			for k, kv := range trials {
				f, ok := kv.(float64)
				if !ok {
					return nil, errors.Errorf("channel %d sample %d trial %d is not a number", c, j, k)
				}
				row[k] = f
			}
			ts[c][j] = row
		}
	}
	return ts, nil
}
