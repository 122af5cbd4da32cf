package record

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
)

var log = logger.GetLogger("record")

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// FileStore persists fixed-width records of type T in a single file.
//
// Thread-safety: FileStore is not thread-safe. A data file is owned by exactly
// one store and that store is driven by a single goroutine.
type FileStore[T any] struct {
	path  string
	codec Codec[T]
}

// Open returns a FileStore for path and creates an empty file (and its parent
// directory) if none exists yet.
func Open[T any](path string, codec Codec[T]) (*FileStore[T], error) {
	if codec.Size() <= 0 {
		return nil, errors.Errorf("record: invalid codec width %d for %s", codec.Size(), path)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, errors.Wrapf(err, "record: create directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePerm)
	if err != nil {
		return nil, errors.Wrapf(err, "record: open %s", path)
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrapf(err, "record: close %s", path)
	}
	log.Debugf("opened %s (record width %d)", path, codec.Size())
	return &FileStore[T]{path: path, codec: codec}, nil
}

// Path returns the backing file path.
func (s *FileStore[T]) Path() string {
	return s.path
}

// Width returns the size of one record in bytes.
func (s *FileStore[T]) Width() int {
	return s.codec.Size()
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

// ReadAll returns every complete record in file order.
// A short trailing chunk (e.g. from an interrupted append) is discarded.
func (s *FileStore[T]) ReadAll() ([]T, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "record: open %s", s.path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	buf := make([]byte, s.codec.Size())
	var result []T

	for {
		if _, err := io.ReadFull(br, buf); err != nil {
			if err == io.EOF {
				break
			}
			if err == io.ErrUnexpectedEOF {
				log.Warningf("%s: dropping trailing partial record", s.path)
				break
			}
			return nil, errors.Wrapf(err, "record: read %s", s.path)
		}
		v, err := s.codec.Decode(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "record: decode record %d of %s", len(result), s.path)
		}
		result = append(result, v)
	}
	return result, nil
}

// ReadAt reads the record at position index (offset = index * width).
// The boolean return value is false if no complete record exists there.
func (s *FileStore[T]) ReadAt(index int) (T, bool, error) {
	var zero T
	if index < 0 {
		return zero, false, nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return zero, false, errors.Wrapf(err, "record: open %s", s.path)
	}
	defer f.Close()

	buf := make([]byte, s.codec.Size())
	n, err := f.ReadAt(buf, s.offset(index))
	if n < len(buf) {
		if err == nil || err == io.EOF {
			return zero, false, nil
		}
		return zero, false, errors.Wrapf(err, "record: read %s at %d", s.path, index)
	}
	v, err := s.codec.Decode(buf)
	if err != nil {
		return zero, false, errors.Wrapf(err, "record: decode record %d of %s", index, s.path)
	}
	return v, true, nil
}

// Count returns the number of complete records in the file.
func (s *FileStore[T]) Count() (int, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, errors.Wrapf(err, "record: stat %s", s.path)
	}
	return int(info.Size() / int64(s.codec.Size())), nil
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Write stores v at position index, overwriting the record there. If index is
// negative the record is appended after the last complete record, replacing a
// partial tail if there is one.
func (s *FileStore[T]) Write(v T, index int) error {
	buf := make([]byte, s.codec.Size())
	if err := s.codec.Encode(v, buf); err != nil {
		return errors.Wrapf(err, "record: encode for %s", s.path)
	}

	if index < 0 {
		n, err := s.Count()
		if err != nil {
			return err
		}
		index = n
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, filePerm)
	if err != nil {
		return errors.Wrapf(err, "record: open %s", s.path)
	}
	if _, err := f.WriteAt(buf, s.offset(index)); err != nil {
		f.Close()
		return errors.Wrapf(err, "record: write %s", s.path)
	}
	return s.syncAndClose(f)
}

// Rewrite replaces the whole file content with records, in order.
// All records are encoded before the file is touched, so an encoding error
// leaves the old content in place. The file is then truncated and written
// sequentially.
func (s *FileStore[T]) Rewrite(records []T) error {
	width := s.codec.Size()
	data := make([]byte, width*len(records))
	for i, v := range records {
		if err := s.codec.Encode(v, data[i*width:(i+1)*width]); err != nil {
			return errors.Wrapf(err, "record: encode record %d for %s", i, s.path)
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return errors.Wrapf(err, "record: truncate %s", s.path)
	}

	bw := bufio.NewWriterSize(f, 64*1024)
	if _, err := bw.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "record: write %s", s.path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "record: flush %s", s.path)
	}
	log.Debugf("rewrote %s with %d records", s.path, len(records))
	return s.syncAndClose(f)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (s *FileStore[T]) offset(index int) int64 {
	return int64(index) * int64(s.codec.Size())
}

func (s *FileStore[T]) syncAndClose(f *os.File) error {
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrapf(err, "record: sync %s", s.path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "record: close %s", s.path)
	}
	return nil
}
