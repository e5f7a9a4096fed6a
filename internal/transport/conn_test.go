package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnRecordsDecodesFramedStream(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	c := &Conn{nc: client}
	records, errCh := c.Records()

	go func() {
		server.Write([]byte(`{"vtime":1,"events":[{"action":"TASK_CREATE","taskId":"A"}]}`))
		server.Write([]byte(`{"vtime":2,"events":[]}`))
		server.Close()
	}()

	var got []Record
	timeout := time.After(2 * time.Second)
loop:
	for {
		select {
		case r, ok := <-records:
			if !ok {
				break loop
			}
			got = append(got, r)
		case <-timeout:
			t.Fatal("timed out waiting for records")
		}
	}

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Vtime)
	assert.Len(t, got[0].Events, 1)
	assert.Equal(t, int64(2), got[1].Vtime)
	assert.Len(t, got[1].Events, 0)

	err, ok := <-errCh
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestConnRecordsSkipsMalformedAndKeepsGoing(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	c := &Conn{nc: client}
	records, _ := c.Records()

	go func() {
		server.Write([]byte(`{"no_vtime_here":true}`))
		server.Write([]byte(`{"vtime":1,"events":"not-an-array"}`))
		server.Write([]byte(`{"vtime":3,"events":[]}`))
		server.Close()
	}()

	var got []Record
	timeout := time.After(2 * time.Second)
loop:
	for {
		select {
		case r, ok := <-records:
			if !ok {
				break loop
			}
			got = append(got, r)
		case <-timeout:
			t.Fatal("timed out waiting for records")
		}
	}

	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Vtime)
}
