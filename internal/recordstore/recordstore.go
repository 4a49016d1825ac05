// Package recordstore loads benchmark, model and publisher records from a
// content directory or a single bundle file into an immutable snapshot.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/benchboard/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/errgroup"
)

// Collection directory names inside a content directory.
const (
	BenchmarksDir = "benchmarks"
	ModelsDir     = "models"
	PublishersDir = "publishers"
)

var (
	// ErrWrongShape is returned when a collection is not a list.
	ErrWrongShape = errors.New("collection is not a list")

	// ErrInvalidRecord is returned when a document fails schema validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// Options controls how records are loaded.
type Options struct {
	// Strict fails the load on the first invalid document instead of skipping it.
	Strict bool
	// NormalizeScores scales fractional snapshots (top score at most 1.0) to the 0-100 range.
	NormalizeScores bool
	// Warn receives every skipped document. It may be nil.
	Warn func(path string, err error)
}

func (o Options) warn(path string, err error) {
	if o.Warn != nil {
		o.Warn(path, err)
	}
}

// document is a decoded file waiting to become a record.
type document struct {
	id   string
	path string
	body any
}

// Load reads every record under path. A directory is read as a content
// directory; a regular file is read as a bundle.
func Load(ctx context.Context, path string, opts Options) (*schema.Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access record source: %w", err)
	}

	var snap *schema.Snapshot
	if info.IsDir() {
		snap, err = loadDirectory(ctx, path, opts)
	} else {
		snap, err = loadBundle(path, opts)
	}
	if err != nil {
		return nil, err
	}

	fingerprint, err := Fingerprint(path)
	if err != nil {
		return nil, err
	}
	snap.Source = path
	snap.Fingerprint = fingerprint
	snap.LoadedAt = time.Now()
	return snap, nil
}

// loadDirectory loads the three collections concurrently.
func loadDirectory(ctx context.Context, root string, opts Options) (*schema.Snapshot, error) {
	snap := &schema.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		docs, err := collectDocuments(gctx, filepath.Join(root, BenchmarksDir), false, opts)
		if err != nil {
			return err
		}
		snap.Benchmarks, err = buildBenchmarks(docs, opts)
		return err
	})
	g.Go(func() error {
		docs, err := collectDocuments(gctx, filepath.Join(root, ModelsDir), true, opts)
		if err != nil {
			return err
		}
		snap.Models, err = buildModels(docs, opts)
		return err
	})
	g.Go(func() error {
		docs, err := collectDocuments(gctx, filepath.Join(root, PublishersDir), false, opts)
		if err != nil {
			return err
		}
		snap.Publishers, err = buildPublishers(docs, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// collectDocuments reads the record files of one collection directory. IDs are
// slash-separated paths relative to dir without extension. A missing
// directory is an empty collection.
func collectDocuments(ctx context.Context, dir string, recursive bool, opts Options) ([]document, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if isRecordFile(d.Name()) {
			paths = append(paths, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	docs := make([]document, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil, err
		}
		id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		if first, dup := seen[id]; dup {
			if err := handleInvalid(p, fmt.Errorf("%w: duplicate id %q already loaded from %s", ErrInvalidRecord, id, first), opts); err != nil {
				return nil, err
			}
			continue
		}
		body, err := readDocument(p)
		if err != nil {
			if err := handleInvalid(p, err, opts); err != nil {
				return nil, err
			}
			continue
		}
		seen[id] = p
		docs = append(docs, document{id: id, path: p, body: body})
	}
	return docs, nil
}

// loadBundle reads a single file holding all three collections.
func loadBundle(path string, opts Options) (*schema.Snapshot, error) {
	body, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	top, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: bundle %s must be an object of collections", ErrWrongShape, path)
	}

	collections := make(map[string][]document, 3)
	for _, name := range []string{BenchmarksDir, ModelsDir, PublishersDir} {
		raw, present := top[name]
		if !present || raw == nil {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrWrongShape, name, path)
		}
		docs := make([]document, 0, len(list))
		seen := make(map[string]struct{}, len(list))
		for i, item := range list {
			loc := fmt.Sprintf("%s#/%s/%d", path, name, i)
			id := bundleID(item)
			if id == "" {
				if err := handleInvalid(loc, fmt.Errorf("%w: record has no id or name", ErrInvalidRecord), opts); err != nil {
					return nil, err
				}
				continue
			}
			if _, dup := seen[id]; dup {
				if err := handleInvalid(loc, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, id), opts); err != nil {
					return nil, err
				}
				continue
			}
			seen[id] = struct{}{}
			docs = append(docs, document{id: id, path: loc, body: item})
		}
		collections[name] = docs
	}

	snap := &schema.Snapshot{}
	if snap.Benchmarks, err = buildBenchmarks(collections[BenchmarksDir], opts); err != nil {
		return nil, err
	}
	if snap.Models, err = buildModels(collections[ModelsDir], opts); err != nil {
		return nil, err
	}
	if snap.Publishers, err = buildPublishers(collections[PublishersDir], opts); err != nil {
		return nil, err
	}
	return snap, nil
}

// bundleID uses the record's id, falling back to a slug of its name.
func bundleID(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	if id, ok := obj["id"].(string); ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	if name, ok := obj["name"].(string); ok {
		return schema.Slugify(name)
	}
	return ""
}

func handleInvalid(path string, err error, opts Options) error {
	if opts.Strict {
		return fmt.Errorf("%s: %w", path, err)
	}
	opts.warn(path, err)
	return nil
}

// buildRecords validates and decodes each document. newRecord returns the
// record pre-filled with defaults; finish applies the id and any
// post-processing.
func buildRecords[T any](docs []document, opts Options, sch *jsonschema.Schema, newRecord func() T, finish func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		if err := validateDocument(sch, d.body); err != nil {
			if err := handleInvalid(d.path, err, opts); err != nil {
				return nil, err
			}
			continue
		}
		rec := newRecord()
		if err := decodeInto(d.body, &rec); err != nil {
			if err := handleInvalid(d.path, fmt.Errorf("%w: %v", ErrInvalidRecord, err), opts); err != nil {
				return nil, err
			}
			continue
		}
		finish(&rec, d.id)
		out = append(out, rec)
	}
	return out, nil
}

func buildBenchmarks(docs []document, opts Options) ([]schema.BenchmarkRecord, error) {
	records, err := buildRecords(docs, opts, benchmarkSchema,
		func() schema.BenchmarkRecord {
			return schema.BenchmarkRecord{Metrics: schema.Metrics{IsBetterHigher: true}}
		},
		func(b *schema.BenchmarkRecord, id string) {
			b.ID = id
			if b.Tags == nil {
				b.Tags = []string{}
			}
			if b.Snapshot == nil {
				b.Snapshot = []schema.ScoreEntry{}
			}
			if opts.NormalizeScores {
				schema.NormalizeSnapshot(b.Snapshot)
			}
		})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func buildModels(docs []document, opts Options) ([]schema.ModelRecord, error) {
	records, err := buildRecords(docs, opts, modelSchema,
		func() schema.ModelRecord { return schema.ModelRecord{} },
		func(m *schema.ModelRecord, id string) { m.ID = id })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func buildPublishers(docs []document, opts Options) ([]schema.PublisherRecord, error) {
	records, err := buildRecords(docs, opts, publisherSchema,
		func() schema.PublisherRecord { return schema.PublisherRecord{} },
		func(p *schema.PublisherRecord, id string) {
			p.ID = id
			info := schema.LookupPublisher(p.Name)
			if p.Color == "" {
				p.Color = info.Color
			}
			if p.Logo == "" {
				p.Logo = info.Logo
			}
		})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
