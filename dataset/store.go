package dataset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/dimgo/archive"
)

// Save streams the dataset as a snapshot into the store under the given
// name. Nothing is published if encoding fails partway.
func (d *Dataset) Save(ctx context.Context, store archive.Store, name string, opts ...SnapshotOption) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("dataset: create %q: %w", name, err)
	}
	if err := d.Snapshot(w, opts...); err != nil {
		archive.Discard(w)
		return err
	}
	return w.Close()
}

// Open loads a snapshot from the store.
func Open(ctx context.Context, store archive.Store, name string) (*Dataset, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", name, err)
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", name, err)
	}
	defer rc.Close()

	ds, err := Load(rc)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %q: %w", name, err)
	}
	return ds, nil
}

// OpenAll loads several snapshots in parallel and returns them keyed by
// name. The first failure cancels the remaining loads.
func OpenAll(ctx context.Context, store archive.Store, names ...string) (map[string]*Dataset, error) {
	results := make([]*Dataset, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range names {
		g.Go(func() error {
			ds, err := Open(ctx, store, name)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*Dataset, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}
