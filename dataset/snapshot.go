package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/dimgo/codec"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
)

const (
	snapshotMagic   = "DGS1"
	snapshotVersion = 1

	defaultBlockSize = 256 * 1024 // 256KB

	// maxHeaderSize caps the header allocation when loading untrusted
	// snapshots.
	maxHeaderSize = 64 << 20
)

// ErrBadSnapshot is returned when a snapshot stream is malformed.
var ErrBadSnapshot = errors.New("dataset: malformed snapshot")

type snapshotOptions struct {
	codec       codec.Codec
	compression Compression
	blockSize   int
}

// SnapshotOption customizes snapshot encoding.
type SnapshotOption func(*snapshotOptions)

// WithCodec selects the codec for the snapshot header.
func WithCodec(c codec.Codec) SnapshotOption {
	return func(o *snapshotOptions) { o.codec = c }
}

// WithCompression selects the block compression algorithm.
func WithCompression(c Compression) SnapshotOption {
	return func(o *snapshotOptions) { o.compression = c }
}

// WithBlockSize sets the uncompressed block size in bytes.
func WithBlockSize(n int) SnapshotOption {
	return func(o *snapshotOptions) { o.blockSize = n }
}

func applySnapshotOptions(opts []SnapshotOption) snapshotOptions {
	o := snapshotOptions{
		codec:       codec.Default,
		compression: CompressionZSTD,
		blockSize:   defaultBlockSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const (
	axisKindPoints      = "points"
	axisKindSymbols     = "symbols"
	axisKindCoordinates = "coordinates"
)

// snapshotHeader describes the stream that follows it. The header is
// plain JSON regardless of codec choice, so any reader can decode it.
type snapshotHeader struct {
	Version     uint32         `json:"version"`
	Codec       string         `json:"codec"`
	Compression string         `json:"compression"`
	Members     []memberHeader `json:"members"`
}

type memberHeader struct {
	Name  string       `json:"name"`
	Unit  string       `json:"unit"`
	Shape []int        `json:"shape"`
	Axes  []axisHeader `json:"axes"`
}

type axisHeader struct {
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Points  []int     `json:"points,omitempty"`
	Symbols []string  `json:"symbols,omitempty"`
	Values  []float64 `json:"values,omitempty"`
	Unit    string    `json:"unit,omitempty"`
}

// Snapshot writes the dataset as a self-describing block stream: a magic
// tag, a length-prefixed JSON header, then framed blocks holding the
// member values as little-endian float64 bits in catalog order.
func (d *Dataset) Snapshot(w io.Writer, opts ...SnapshotOption) error {
	o := applySnapshotOptions(opts)

	hdr := snapshotHeader{
		Version:     snapshotVersion,
		Codec:       o.codec.Name(),
		Compression: o.compression.String(),
		Members:     make([]memberHeader, 0, len(d.names)),
	}
	for _, name := range d.names {
		arr := d.members[name]
		m, err := buildMemberHeader(name, arr)
		if err != nil {
			return err
		}
		hdr.Members = append(hdr.Members, m)
	}

	headerBytes, err := o.codec.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("dataset: encode snapshot header: %w", err)
	}

	if _, err := io.WriteString(w, snapshotMagic); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}

	bw := newBlockWriter(w, o.compression, o.blockSize)
	scratch := make([]byte, 8*4096)
	for _, name := range d.names {
		if err := writeValues(bw, d.members[name].Values(), scratch); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func buildMemberHeader(name string, arr physical.Array) (memberHeader, error) {
	axes := arr.Axes()
	m := memberHeader{
		Name:  name,
		Unit:  arr.Unit().String(),
		Shape: arr.Shape(),
		Axes:  make([]axisHeader, 0, axes.Len()),
	}
	for _, axisName := range axes.Names() {
		axis, _ := axes.Get(axisName)
		h := axisHeader{Name: axisName}
		switch axis := axis.(type) {
		case physical.Points:
			h.Kind = axisKindPoints
			h.Points = axis.Values()
		case physical.Symbols:
			h.Kind = axisKindSymbols
			h.Symbols = axis.Values()
		case physical.Coordinates:
			h.Kind = axisKindCoordinates
			h.Values = axis.Values()
			h.Unit = axis.Unit().String()
		default:
			return memberHeader{}, fmt.Errorf("dataset: member %q: axis %q has unsupported type %T", name, axisName, axis)
		}
		m.Axes = append(m.Axes, h)
	}
	return m, nil
}

// writeValues streams float64 bits through the block writer in slabs so
// large members never need a full second copy in memory.
func writeValues(bw *blockWriter, values []float64, scratch []byte) error {
	slab := len(scratch) / 8
	for len(values) > 0 {
		n := len(values)
		if n > slab {
			n = slab
		}
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint64(scratch[8*i:], math.Float64bits(values[i]))
		}
		if _, err := bw.Write(scratch[:8*n]); err != nil {
			return err
		}
		values = values[n:]
	}
	return nil
}

// Load reads a snapshot stream back into a dataset.
func Load(r io.Reader) (*Dataset, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: missing magic", ErrBadSnapshot)
	}
	if string(magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, magic[:])
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: missing header length", ErrBadSnapshot)
	}
	headerLen := binary.LittleEndian.Uint32(lenBuf[:])
	if headerLen == 0 || headerLen > maxHeaderSize {
		return nil, fmt.Errorf("%w: header length %d", ErrBadSnapshot, headerLen)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}

	// The header is plain JSON for every registered codec, so the
	// default codec can decode it before the codec name is known.
	var hdr snapshotHeader
	if err := codec.Default.Unmarshal(headerBytes, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if hdr.Version == 0 || hdr.Version > snapshotVersion {
		return nil, fmt.Errorf("dataset: unsupported snapshot version %d", hdr.Version)
	}
	if _, ok := codec.ByName(hdr.Codec); !ok {
		return nil, fmt.Errorf("dataset: snapshot written with unknown codec %q", hdr.Codec)
	}

	compression, err := ParseCompression(hdr.Compression)
	if err != nil {
		return nil, err
	}

	payload, err := decompressAll(r, compression)
	if err != nil {
		return nil, err
	}

	want := 0
	for _, m := range hdr.Members {
		n := 1
		for _, s := range m.Shape {
			n *= s
		}
		want += 8 * n
	}
	if len(payload) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, header wants %d", ErrBadSnapshot, len(payload), want)
	}

	ds := New()
	off := 0
	for _, m := range hdr.Members {
		n := 1
		for _, s := range m.Shape {
			n *= s
		}
		values := make([]float64, n)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off+8*i:]))
		}
		off += 8 * n

		unit, err := metric.Parse(m.Unit)
		if err != nil {
			return nil, fmt.Errorf("dataset: member %q: %w", m.Name, err)
		}
		axes, err := buildAxes(m)
		if err != nil {
			return nil, err
		}
		arr, err := physical.NewArray(values, m.Shape, unit, axes)
		if err != nil {
			return nil, fmt.Errorf("dataset: member %q: %w", m.Name, err)
		}
		if err := ds.Put(m.Name, arr); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func buildAxes(m memberHeader) (physical.Axes, error) {
	entries := make([]physical.NamedAxis, 0, len(m.Axes))
	for _, h := range m.Axes {
		var axis physical.Axis
		switch h.Kind {
		case axisKindPoints:
			axis = physical.NewPoints(h.Points...)
		case axisKindSymbols:
			axis = physical.NewSymbols(h.Symbols...)
		case axisKindCoordinates:
			unit, err := metric.Parse(h.Unit)
			if err != nil {
				return physical.Axes{}, fmt.Errorf("dataset: member %q axis %q: %w", m.Name, h.Name, err)
			}
			axis = physical.NewCoordinates(h.Values, unit)
		default:
			return physical.Axes{}, fmt.Errorf("dataset: member %q axis %q: unknown kind %q", m.Name, h.Name, h.Kind)
		}
		entries = append(entries, physical.Named(h.Name, axis))
	}
	axes, err := physical.NewAxes(entries...)
	if err != nil {
		return physical.Axes{}, fmt.Errorf("dataset: member %q: %w", m.Name, err)
	}
	return axes, nil
}
