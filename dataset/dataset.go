package dataset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/dimgo/physical"
)

var (
	// ErrEmptyName is returned when a member is added under an empty name.
	ErrEmptyName = errors.New("dataset: empty member name")
	// ErrNotFound is returned when a named member does not exist.
	ErrNotFound = errors.New("dataset: member not found")
)

// Dataset is an ordered catalog of named arrays. Members keep their
// insertion order; replacing a member keeps its original slot.
//
// Dataset is not safe for concurrent mutation.
type Dataset struct {
	names   []string
	members map[string]physical.Array
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{members: make(map[string]physical.Array)}
}

// Put adds or replaces a member under the given name.
func (d *Dataset) Put(name string, arr physical.Array) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := d.members[name]; !ok {
		d.names = append(d.names, name)
	}
	d.members[name] = arr
	return nil
}

// Get returns the named member.
func (d *Dataset) Get(name string) (physical.Array, bool) {
	arr, ok := d.members[name]
	return arr, ok
}

// Names returns the member names in insertion order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the number of members.
func (d *Dataset) Len() int {
	return len(d.names)
}

// Delete removes the named member. Missing names are ignored.
func (d *Dataset) Delete(name string) {
	if _, ok := d.members[name]; !ok {
		return
	}
	delete(d.members, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
}

// SelectAll applies the targets to every member that carries the targeted
// dimensions and returns a new dataset. Members without any targeted
// dimension pass through unchanged, so one call can slice a mixed catalog
// where only some quantities live on the targeted axes. A dimension that no
// member carries is an error.
func (d *Dataset) SelectAll(targets map[string]any, opts ...physical.IndexOption) (*Dataset, error) {
	used := make(map[string]bool, len(targets))

	out := New()
	for _, name := range d.names {
		arr := d.members[name]

		relevant := make(map[string]any)
		for dim, target := range targets {
			if arr.Axes().Index(dim) >= 0 {
				relevant[dim] = target
				used[dim] = true
			}
		}

		if len(relevant) == 0 {
			if err := out.Put(name, arr); err != nil {
				return nil, err
			}
			continue
		}

		selected, err := arr.Select(relevant, opts...)
		if err != nil {
			return nil, fmt.Errorf("dataset: member %q: %w", name, err)
		}
		if err := out.Put(name, selected); err != nil {
			return nil, err
		}
	}

	for dim := range targets {
		if !used[dim] {
			return nil, fmt.Errorf("dataset: %w: %q", physical.ErrUnknownAxis, dim)
		}
	}
	return out, nil
}
