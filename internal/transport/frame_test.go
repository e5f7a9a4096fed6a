package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameScannerExtractsSingleObject(t *testing.T) {
	var f FrameScanner
	f.Feed([]byte(`{"vtime":1,"events":[]}`))
	frame, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"vtime":1,"events":[]}`, string(frame))
	assert.Equal(t, 0, f.Pending())
}

func TestFrameScannerHandlesConcatenatedRecords(t *testing.T) {
	var f FrameScanner
	f.Feed([]byte(`{"a":1}{"b":2}`))

	frame, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(frame))

	frame, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"b":2}`, string(frame))

	_, ok = f.Next()
	assert.False(t, ok)
}

func TestFrameScannerBuffersPartialRecords(t *testing.T) {
	var f FrameScanner
	f.Feed([]byte(`{"vtime":`))
	_, ok := f.Next()
	assert.False(t, ok)

	f.Feed([]byte(`1,"events":[]}`))
	frame, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"vtime":1,"events":[]}`, string(frame))
}

func TestFrameScannerRespectsQuotedBracesAndEscapes(t *testing.T) {
	var f FrameScanner
	f.Feed([]byte(`{"note":"a } brace and a \" quote"}` + `{"b":2}`))

	frame, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"note":"a } brace and a \" quote"}`, string(frame))

	frame, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"b":2}`, string(frame))
}

func TestFrameScannerSkipsLeadingGarbageBeforeFirstBrace(t *testing.T) {
	var f FrameScanner
	f.Feed([]byte(`garbage{"a":1}`))
	frame, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(frame))
}
