package report

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrSchemaMismatch is returned when a binary report has another layout.
var ErrSchemaMismatch = errors.New("report schema mismatch")

// lz4Magic opens every LZ4 frame.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// WriteYAML writes the report as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report YAML: %w", err)
	}

	return enc.Close()
}

// WriteMsgpack writes the report as MessagePack, inside an LZ4 frame when
// compress is set.
func WriteMsgpack(w io.Writer, r *Report, compress bool) error {
	if !compress {
		return encodeMsgpack(w, r)
	}

	zw := lz4.NewWriter(w)

	if err := encodeMsgpack(zw, r); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush compressed report: %w", err)
	}

	return nil
}

func encodeMsgpack(w io.Writer, r *Report) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// ReadMsgpack reads a report written by WriteMsgpack, compressed or not.
func ReadMsgpack(rd io.Reader) (*Report, error) {
	br := bufio.NewReader(rd)

	var src io.Reader = br

	head, err := br.Peek(len(lz4Magic))
	if err == nil && bytes.Equal(head, lz4Magic) {
		src = lz4.NewReader(br)
	}

	var r Report
	if err := msgpack.NewDecoder(src).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	if r.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, r.Schema, SchemaVersion)
	}

	return &r, nil
}
