// Package wire frames batch payloads for handoff to the external sender.
// Transmission itself is out of scope; this is only the payload format: a
// tag, a big-endian length, and a CBOR-encoded value.
package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"proctorai.net/vigil/record"
)

const (
	ValueMaxLength = 1<<16 - 1
	// ValueMaxLength can fit in uint16.
	_ uint16 = ValueMaxLength
)

var (
	ErrMaxLengthExceeded = errors.New("length is larger than the maximum length")
	ErrUnexpectedTag     = errors.New("unexpected tag")
)

type Tag uint16

const (
	TagBatch Tag = iota + 1
)

func writeUint16(w io.Writer, v uint16) error {
	_, err := w.Write([]byte{byte(v >> 8), byte(v)})
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	buf := make([]byte, 2)
	_, err := io.ReadFull(r, buf)
	v := uint16(0)
	v |= uint16(buf[0]) << 8
	v |= uint16(buf[1])
	return v, err
}

// WriteBatch frames one batch onto w.
func WriteBatch(w io.Writer, b record.Batch) error {
	value, err := cbor.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	if len(value) > ValueMaxLength {
		return ErrMaxLengthExceeded
	}

	err = writeUint16(w, uint16(TagBatch))
	if err != nil {
		return fmt.Errorf("failed to write tag: %w", err)
	}

	err = writeUint16(w, uint16(len(value)))
	if err != nil {
		return fmt.Errorf("failed to write length: %w", err)
	}

	_, err = w.Write(value)
	if err != nil {
		return fmt.Errorf("failed to write value: %w", err)
	}

	return nil
}

// ReadBatch reads one framed batch from r.
func ReadBatch(r io.Reader) (record.Batch, error) {
	tag, err := readUint16(r)
	if err != nil {
		return record.Batch{}, fmt.Errorf("failed to read tag: %w", err)
	}
	if Tag(tag) != TagBatch {
		return record.Batch{}, ErrUnexpectedTag
	}

	length, err := readUint16(r)
	if err != nil {
		return record.Batch{}, fmt.Errorf("failed to read length: %w", err)
	}

	value := make([]byte, length)
	_, err = io.ReadFull(r, value)
	if err != nil {
		return record.Batch{}, fmt.Errorf("failed to read value: %w", err)
	}

	var b record.Batch
	err = cbor.Unmarshal(value, &b)
	if err != nil {
		return record.Batch{}, fmt.Errorf("failed to unmarshal batch: %w", err)
	}
	return b, nil
}
