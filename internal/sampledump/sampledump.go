// Package sampledump writes and reads raw audio captures: headerless
// little-endian float32 mono, the format the browser worklet can post and
// common audio editors import as raw data.
package sampledump

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ErrTruncated is returned when a capture does not end on a sample boundary.
var ErrTruncated = errors.New("sampledump: truncated sample")

const sampleBytes = 4

// Writer appends samples to an underlying stream.
type Writer struct {
	w       *bufio.Writer
	buf     [sampleBytes]byte
	samples int64
}

// NewWriter buffers writes to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteBlock appends block, narrowed to float32.
func (w *Writer) WriteBlock(block []float64) error {
	for _, v := range block {
		if err := w.put(float32(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock32 appends block.
func (w *Writer) WriteBlock32(block []float32) error {
	for _, v := range block {
		if err := w.put(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) put(v float32) error {
	binary.LittleEndian.PutUint32(w.buf[:], math.Float32bits(v))
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return fmt.Errorf("sampledump: write: %w", err)
	}
	w.samples++
	return nil
}

// Flush writes buffered samples through.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("sampledump: flush: %w", err)
	}
	return nil
}

// Samples returns the number of samples written.
func (w *Writer) Samples() int64 { return w.samples }

// ReadAll decodes a whole capture.
func ReadAll(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sampledump: read: %w", err)
	}
	if len(data)%sampleBytes != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(data)%sampleBytes)
	}
	out := make([]float64, len(data)/sampleBytes)
	for i := range out {
		bits := binary.LittleEndian.Uint32(data[i*sampleBytes:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out, nil
}

// FileName expands strftime directives in pattern, e.g.
// "tx-%Y%m%d-%H%M%S.f32".
func FileName(pattern string, t time.Time) (string, error) {
	name, err := strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("sampledump: file name %q: %w", pattern, err)
	}
	return name, nil
}

// File is a capture on disk.
type File struct {
	*Writer
	f    *os.File
	name string
}

// Create opens a new capture named by pattern expanded at t.
func Create(pattern string, t time.Time) (*File, error) {
	name, err := FileName(pattern, t)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("sampledump: %w", err)
	}
	return &File{Writer: NewWriter(f), f: f, name: name}, nil
}

// Name returns the expanded file name.
func (f *File) Name() string { return f.name }

// Close flushes and closes the file.
func (f *File) Close() error {
	ferr := f.Flush()
	cerr := f.f.Close()
	if ferr != nil {
		return ferr
	}
	if cerr != nil {
		return fmt.Errorf("sampledump: %w", cerr)
	}
	return nil
}
