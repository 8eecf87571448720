package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/dimgo/internal/hash"
)

// Compression selects the block compression algorithm for snapshots.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 trades ratio for speed, suited to snapshots read often.
	CompressionLZ4 Compression = 1
	// CompressionZSTD compresses harder, suited to archived snapshots.
	CompressionZSTD Compression = 2
)

// String returns the wire name of the compression algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// ParseCompression resolves a wire name back to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("dataset: unknown compression %q", name)
	}
}

// zstd coders are expensive to construct and safe to reuse, so both
// directions are pooled.
var zstdEncoders = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		return enc
	},
}

var zstdDecoders = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Every block is framed as
//
//	[raw size uint32][stored size uint32][CRC32C uint32][stored bytes]
//
// in little-endian order. A stored size of zero marks a raw block. The
// checksum always covers the stored bytes, so corruption is caught
// before any decompression runs.
const blockHeaderSize = 12

var (
	// ErrChecksum reports a snapshot block whose stored bytes do not match
	// their recorded CRC32C.
	ErrChecksum = errors.New("dataset: block checksum mismatch")

	errTruncatedHeader  = errors.New("dataset: truncated block header")
	errTruncatedPayload = errors.New("dataset: truncated block payload")
	errSizeMismatch     = errors.New("dataset: decompressed size mismatch")
)

// frame prefixes stored with the block header. storedCompressed is false
// for raw blocks.
func frame(rawLen int, storedCompressed bool, stored []byte) []byte {
	out := make([]byte, blockHeaderSize+len(stored))
	binary.LittleEndian.PutUint32(out[0:4], uint32(rawLen))
	if storedCompressed {
		binary.LittleEndian.PutUint32(out[4:8], uint32(len(stored)))
	}
	binary.LittleEndian.PutUint32(out[8:12], hash.CRC32C(stored))
	copy(out[blockHeaderSize:], stored)
	return out
}

// compressBlock frames one block. Blocks that barely shrink, or that the
// algorithm rejects as incompressible, are stored raw so reads skip the
// decompression pass.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error
	switch compression {
	case CompressionLZ4:
		compressed, err = lz4Compress(data)
	case CompressionZSTD:
		compressed, err = zstdCompress(data)
	}
	if err != nil {
		return nil, err
	}
	if len(compressed) == 0 || len(compressed)*10 > len(data)*9 {
		return frame(len(data), false, data), nil
	}
	return frame(len(data), true, compressed), nil
}

// lz4Compress returns nil for incompressible input.
func lz4Compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil || n == 0 {
		return nil, err
	}
	return dst[:n], nil
}

func zstdCompress(data []byte) ([]byte, error) {
	enc := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

// expand decompresses one stored payload back to rawLen bytes. Anything
// other than zstd is treated as LZ4.
func expand(payload []byte, rawLen uint32, compression Compression) ([]byte, error) {
	out := make([]byte, rawLen)
	if compression == CompressionZSTD {
		dec := zstdDecoders.Get().(*zstd.Decoder)
		defer zstdDecoders.Put(dec)
		got, err := dec.DecodeAll(payload, out[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(got)) != rawLen {
			return nil, errSizeMismatch
		}
		return got, nil
	}
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, err
	}
	if uint32(n) != rawLen {
		return nil, errSizeMismatch
	}
	return out, nil
}

// blockWriter buffers writes into fixed-size blocks and frames each full
// block onto the underlying writer.
type blockWriter struct {
	out         io.Writer
	compression Compression
	blockSize   int
	buf         bytes.Buffer
	written     int64
}

func newBlockWriter(w io.Writer, compression Compression, blockSize int) *blockWriter {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	bw := &blockWriter{out: w, compression: compression, blockSize: blockSize}
	bw.buf.Grow(blockSize)
	return bw
}

func (w *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if w.buf.Len() >= w.blockSize {
			if err := w.flush(); err != nil {
				return total, err
			}
		}
		take := min(w.blockSize-w.buf.Len(), len(p))
		w.buf.Write(p[:take])
		total += take
		p = p[take:]
	}
	return total, nil
}

func (w *blockWriter) flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	framed, err := compressBlock(w.buf.Bytes(), w.compression)
	if err != nil {
		return err
	}
	n, err := w.out.Write(framed)
	w.written += int64(n)
	w.buf.Reset()
	return err
}

// Flush frames the buffered tail. Call it once after the final Write.
func (w *blockWriter) Flush() error {
	return w.flush()
}

// BytesWritten returns the framed bytes emitted so far.
func (w *blockWriter) BytesWritten() int64 {
	return w.written
}

// blockReader streams framed blocks off an io.Reader, verifying each
// checksum before decompressing.
type blockReader struct {
	src         io.Reader
	compression Compression
	header      [blockHeaderSize]byte
}

func newBlockReader(r io.Reader, compression Compression) *blockReader {
	return &blockReader{src: r, compression: compression}
}

// ReadBlock returns the next raw block, or io.EOF cleanly at the end of
// the stream.
func (r *blockReader) ReadBlock() ([]byte, error) {
	if _, err := io.ReadFull(r.src, r.header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errTruncatedHeader
		}
		return nil, err
	}
	rawLen := binary.LittleEndian.Uint32(r.header[0:4])
	storedLen := binary.LittleEndian.Uint32(r.header[4:8])
	sum := binary.LittleEndian.Uint32(r.header[8:12])

	compressed := storedLen != 0
	if !compressed {
		storedLen = rawLen
	}

	payload := make([]byte, storedLen)
	if _, err := io.ReadFull(r.src, payload); err != nil {
		return nil, errTruncatedPayload
	}
	if hash.CRC32C(payload) != sum {
		return nil, ErrChecksum
	}
	if !compressed {
		return payload, nil
	}
	return expand(payload, rawLen, r.compression)
}

// decompressAll drains every block from r and concatenates the raw
// payloads.
func decompressAll(r io.Reader, compression Compression) ([]byte, error) {
	br := newBlockReader(r, compression)
	var out []byte
	for {
		block, err := br.ReadBlock()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
}
