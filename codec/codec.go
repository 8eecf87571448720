// Package codec selects the encoding for snapshot headers.
//
// Snapshot files are self-describing: the header records the name of the
// codec that wrote it, and readers check that name against the built-in
// set. The default may change between releases without invalidating
// existing files.
package codec

import "fmt"

// Codec encodes and decodes header metadata. Implementations must be safe
// for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for newly written snapshots.
var Default Codec = GoJSON{}

// ByName resolves a built-in codec by the stable name recorded in
// snapshot headers.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	}
	return nil, false
}

// MustMarshal encodes v with c, using Default when c is nil, and panics on
// failure. Test helper.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	data, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: %w", c.Name(), err))
	}
	return data
}
