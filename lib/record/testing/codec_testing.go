package testing

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ValentinKolb/dBookstore/lib/record"
)

// SampleFactory returns at least two distinct values of T.
type SampleFactory[T any] func() []T

// RunCodecTests runs the conformance suite for a codec.
func RunCodecTests[T any](t *testing.T, name string, codec record.Codec[T], samples SampleFactory[T]) {
	t.Run(name, func(t *testing.T) {
		t.Run("Width", func(t *testing.T) {
			testWidth(t, codec, samples())
		})

		t.Run("RewriteReadAll", func(t *testing.T) {
			testRewriteReadAll(t, codec, samples())
		})

		t.Run("ReadAt", func(t *testing.T) {
			testReadAt(t, codec, samples())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, codec, samples())
		})

		t.Run("Append", func(t *testing.T) {
			testAppend(t, codec, samples())
		})

		t.Run("TruncatedTail", func(t *testing.T) {
			testTruncatedTail(t, codec, samples())
		})

		t.Run("EmptyFile", func(t *testing.T) {
			testEmptyFile(t, codec)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func openStore[T any](t *testing.T, codec record.Codec[T]) *record.FileStore[T] {
	t.Helper()
	s, err := record.Open(filepath.Join(t.TempDir(), "records.dat"), codec)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func requireSamples[T any](t *testing.T, samples []T) {
	t.Helper()
	if len(samples) < 2 {
		t.Fatalf("need at least 2 samples, got %d", len(samples))
	}
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return info.Size()
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testWidth[T any](t *testing.T, codec record.Codec[T], samples []T) {
	for i, v := range samples {
		buf := make([]byte, codec.Size())
		if err := codec.Encode(v, buf); err != nil {
			t.Fatalf("encode sample %d: %v", i, err)
		}
		got, err := codec.Decode(buf)
		if err != nil {
			t.Fatalf("decode sample %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Errorf("sample %d: got %+v, want %+v", i, got, v)
		}
	}
}

func testRewriteReadAll[T any](t *testing.T, codec record.Codec[T], samples []T) {
	s := openStore(t, codec)
	if err := s.Rewrite(samples); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if size := fileSize(t, s.Path()); size != int64(len(samples)*codec.Size()) {
		t.Errorf("file size = %d, want %d", size, len(samples)*codec.Size())
	}

	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if !reflect.DeepEqual(got, samples) {
		t.Errorf("read all mismatch:\n got  %+v\n want %+v", got, samples)
	}

	// rewriting with fewer records must shrink the file
	if err := s.Rewrite(samples[:1]); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if n, _ := s.Count(); n != 1 {
		t.Errorf("count after shrink = %d, want 1", n)
	}
}

func testReadAt[T any](t *testing.T, codec record.Codec[T], samples []T) {
	requireSamples(t, samples)
	s := openStore(t, codec)
	if err := s.Rewrite(samples); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	for i, want := range samples {
		got, ok, err := s.ReadAt(i)
		if err != nil || !ok {
			t.Fatalf("read at %d: ok=%v err=%v", i, ok, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("read at %d: got %+v, want %+v", i, got, want)
		}
	}

	if _, ok, err := s.ReadAt(len(samples)); ok || err != nil {
		t.Errorf("read past end: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.ReadAt(-1); ok {
		t.Errorf("read at -1 should not find a record")
	}
}

func testOverwrite[T any](t *testing.T, codec record.Codec[T], samples []T) {
	requireSamples(t, samples)
	s := openStore(t, codec)
	if err := s.Rewrite(samples); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	// overwrite record 0 with the last sample
	last := samples[len(samples)-1]
	if err := s.Write(last, 0); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, err := s.ReadAt(0)
	if err != nil || !ok {
		t.Fatalf("read at 0: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, last) {
		t.Errorf("overwritten record: got %+v, want %+v", got, last)
	}
	if n, _ := s.Count(); n != len(samples) {
		t.Errorf("count after overwrite = %d, want %d", n, len(samples))
	}
}

func testAppend[T any](t *testing.T, codec record.Codec[T], samples []T) {
	s := openStore(t, codec)
	for i, v := range samples {
		if err := s.Write(v, -1); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if !reflect.DeepEqual(got, samples) {
		t.Errorf("appended records mismatch:\n got  %+v\n want %+v", got, samples)
	}
}

func testTruncatedTail[T any](t *testing.T, codec record.Codec[T], samples []T) {
	s := openStore(t, codec)
	if err := s.Rewrite(samples); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	// simulate an interrupted append
	f, err := os.OpenFile(s.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Write(make([]byte, codec.Size()/2+1)); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	f.Close()

	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if !reflect.DeepEqual(got, samples) {
		t.Errorf("partial tail not dropped:\n got  %+v\n want %+v", got, samples)
	}
	if n, _ := s.Count(); n != len(samples) {
		t.Errorf("count = %d, want %d", n, len(samples))
	}

	// the next append replaces the partial tail
	if err := s.Write(samples[0], -1); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err = s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	want := append(append([]T(nil), samples...), samples[0])
	if !reflect.DeepEqual(got, want) {
		t.Errorf("append after partial tail:\n got  %+v\n want %+v", got, want)
	}
}

func testEmptyFile[T any](t *testing.T, codec record.Codec[T]) {
	s := openStore(t, codec)
	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
	if n, err := s.Count(); n != 0 || err != nil {
		t.Errorf("count = %d (err %v), want 0", n, err)
	}
}
