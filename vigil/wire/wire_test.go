package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proctorai.net/vigil/record"
)

func TestWriteReadBatch(t *testing.T) {
	in := record.Batch{
		Seq:       7,
		FlushedAt: 1_700_000_005_000,
		Records: []record.Record{
			{
				Type:         record.TypeClipboard,
				Data:         map[string]any{"action": "copy", "selection": int64(50)},
				Timestamp:    1_700_000_001_000,
				DeviceType:   record.DeviceDesktop,
				ScreenWidth:  1920,
				ScreenHeight: 1080,
				WindowWidth:  1280,
				WindowHeight: 720,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBatch(&buf, in))

	out, err := ReadBatch(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Seq, out.Seq)
	assert.Equal(t, in.FlushedAt, out.FlushedAt)
	require.Len(t, out.Records, 1)
	assert.Equal(t, record.TypeClipboard, out.Records[0].Type)
	assert.Equal(t, record.DeviceDesktop, out.Records[0].DeviceType)
	assert.EqualValues(t, 50, out.Records[0].Data["selection"])
}

func TestReadBatchRejectsUnexpectedTag(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x99, 0x00, 0x00})
	_, err := ReadBatch(buf)
	require.ErrorIs(t, err, ErrUnexpectedTag)
}

func TestWriteBatchRejectsOversizedValue(t *testing.T) {
	big := record.Batch{Records: []record.Record{{
		Type: record.TypeKeyPress,
		Data: map[string]any{"key_type": string(make([]byte, ValueMaxLength))},
	}}}
	var buf bytes.Buffer
	err := WriteBatch(&buf, big)
	require.ErrorIs(t, err, ErrMaxLengthExceeded)
	assert.Zero(t, buf.Len())
}

func TestReadBatchTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBatch(&buf, record.Batch{Seq: 1}))
	truncated := bytes.NewBuffer(buf.Bytes()[:buf.Len()-1])
	_, err := ReadBatch(truncated)
	require.Error(t, err)
}
