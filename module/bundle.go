package module

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"
)

// Bundle is a flat name→source table, the in-memory form of a `.cloub`
// archive: a zstd frame wrapping a simple length-prefixed record
// stream. No general archive format is needed since the spec's module
// keys are already just strings (§4.4).
type Bundle struct {
	Sources map[string]string
}

// WriteBundle serializes sources as a zstd-compressed `.cloub` file at
// path. Records are written in sorted key order so the output is
// deterministic across runs (useful for reproducible build artifacts).
func WriteBundle(path string, sources map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("init zstd writer: %w", err)
	}
	defer enc.Close()

	keys := make([]string, 0, len(sources))
	for k := range sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writeRecord(enc, k, sources[k]); err != nil {
			return fmt.Errorf("write record %q: %w", k, err)
		}
	}
	return nil
}

func writeRecord(w io.Writer, name, content string) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(name)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(content)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, content)
	return err
}

// LoadBundle reads a `.cloub` file produced by WriteBundle into a fresh
// MemoryStore, so `require` resolves against the bundled sources exactly
// as it would against loose files on disk.
func LoadBundle(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("init zstd reader: %w", err)
	}
	defer dec.Close()

	store := NewMemoryStore()
	r := bufio.NewReader(dec)
	for {
		name, content, err := readRecord(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bundle record: %w", err)
		}
		store.AddFile(name, content)
	}
	return store, nil
}

func readRecord(r *bufio.Reader) (name, content string, err error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", "", err
	}
	nameLen := binary.BigEndian.Uint32(lenBuf[:])
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", "", err
	}

	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", "", err
	}
	contentLen := binary.BigEndian.Uint32(lenBuf[:])
	contentBuf := make([]byte, contentLen)
	if _, err := io.ReadFull(r, contentBuf); err != nil {
		return "", "", err
	}

	return string(nameBuf), string(contentBuf), nil
}
