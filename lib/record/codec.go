package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// --------------------------------------------------------------------------
// Codec Interface
// --------------------------------------------------------------------------

// Codec maps values of type T to a fixed number of bytes.
// Implementations must always produce and consume exactly Size() bytes.
type Codec[T any] interface {
	// Size returns the width of one encoded record in bytes.
	Size() int
	// Encode writes v into buf. buf has length Size() and is zeroed by the caller.
	// An error is returned if a field of v does not fit into its capacity.
	Encode(v T, buf []byte) error
	// Decode reads a value from buf. buf has length Size().
	Decode(buf []byte) (T, error)
}

// --------------------------------------------------------------------------
// Field Errors
// --------------------------------------------------------------------------

// FieldTooLongError is returned when a string does not fit into its fixed
// width buffer (the buffer always keeps at least one terminating zero byte).
type FieldTooLongError struct {
	Field    string
	Len      int
	Capacity int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %s too long: %d bytes (capacity %d)", e.Field, e.Len, e.Capacity)
}

// Capacity returns the maximum string length a buffer of the given width holds.
func Capacity(width int) int {
	return width - 1
}

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// Writer is a cursor over a record buffer used by Codec.Encode.
// The first failing Put* call is remembered and returned by Err(); later calls
// are ignored so an encoder can be written as a flat list of fields.
type Writer struct {
	buf []byte
	pos int
	err error
}

// NewWriter creates a Writer positioned at the start of buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// PutString writes s into a zero padded field of the given width.
func (w *Writer) PutString(field string, s string, width int) {
	if w.err != nil {
		return
	}
	if !w.fits(width) {
		return
	}
	if len(s) > Capacity(width) {
		w.err = &FieldTooLongError{Field: field, Len: len(s), Capacity: Capacity(width)}
		return
	}
	copy(w.buf[w.pos:w.pos+width], s)
	w.pos += width
}

// PutInt64 writes v as a little-endian int64.
func (w *Writer) PutInt64(v int64) {
	if w.err != nil || !w.fits(8) {
		return
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:w.pos+8], uint64(v))
	w.pos += 8
}

// PutFloat64 writes v as a little-endian IEEE 754 double.
func (w *Writer) PutFloat64(v float64) {
	if w.err != nil || !w.fits(8) {
		return
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:w.pos+8], math.Float64bits(v))
	w.pos += 8
}

// PutBool writes v as a single byte (0 or 1).
func (w *Writer) PutBool(v bool) {
	if w.err != nil || !w.fits(1) {
		return
	}
	if v {
		w.buf[w.pos] = 1
	}
	w.pos++
}

// Skip leaves n zero bytes of padding.
func (w *Writer) Skip(n int) {
	if w.err != nil || !w.fits(n) {
		return
	}
	w.pos += n
}

// Err returns the first error that occurred while writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fits(n int) bool {
	if w.pos+n > len(w.buf) {
		w.err = fmt.Errorf("record overflow: need %d bytes at offset %d, buffer is %d", n, w.pos, len(w.buf))
		return false
	}
	return true
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// Reader is the decoding counterpart of Writer.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader creates a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// String reads a zero padded string field of the given width.
func (r *Reader) String(width int) string {
	if r.err != nil || !r.fits(width) {
		return ""
	}
	field := r.buf[r.pos : r.pos+width]
	r.pos += width
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() int64 {
	if r.err != nil || !r.fits(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return int64(v)
}

// Float64 reads a little-endian IEEE 754 double.
func (r *Reader) Float64() float64 {
	if r.err != nil || !r.fits(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return math.Float64frombits(v)
}

// Bool reads a single byte, any non-zero value is true.
func (r *Reader) Bool() bool {
	if r.err != nil || !r.fits(1) {
		return false
	}
	v := r.buf[r.pos] != 0
	r.pos++
	return v
}

// Skip jumps over n bytes of padding.
func (r *Reader) Skip(n int) {
	if r.err != nil || !r.fits(n) {
		return
	}
	r.pos += n
}

// Err returns the first error that occurred while reading.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) fits(n int) bool {
	if r.pos+n > len(r.buf) {
		r.err = fmt.Errorf("record underflow: need %d bytes at offset %d, buffer is %d", n, r.pos, len(r.buf))
		return false
	}
	return true
}
