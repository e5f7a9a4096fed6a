package transport

import (
	"bufio"
	"encoding/json"
	"io"
	"net"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Record is one inbound tick record. Events are kept as raw JSON so
// the core can apply its own explicit fallible decode per event
// instead of failing the whole batch on one bad event.
type Record struct {
	Vtime  int64             `json:"vtime"`
	Events []json.RawMessage `json:"events"`
}

// rawRecord is used only to detect "vtime"/"events" presence and
// "events" being an array, since a plain struct unmarshal can't tell
// "field absent" from "field zero value" — and a record missing
// either must be silently skipped rather than decoded with a bogus
// zero vtime or an empty event batch.
type rawRecord struct {
	Vtime  *int64           `json:"vtime"`
	Events *json.RawMessage `json:"events"`
}

// Conn dials a Unix domain socket endpoint and yields decoded tick
// records, framed per FrameScanner.
type Conn struct {
	nc  net.Conn
	fs  FrameScanner
	log *logrus.Logger
}

// Dial connects to the given endpoint (a Unix domain socket path).
func Dial(endpoint string, log *logrus.Logger) (*Conn, error) {
	nc, err := net.Dial("unix", endpoint)
	if err != nil {
		return nil, err
	}
	return &Conn{nc: nc, log: log}, nil
}

// Close releases the underlying connection.
func (c *Conn) Close() error {
	var result *multierror.Error
	if err := c.nc.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Records returns a channel of decoded Records. The channel is closed
// on clean EOF; a transport-level read error is reported via errCh and
// both channels are then closed. Malformed framing, schema mismatches,
// and unparsable records are logged at debug level and skipped — they
// are not transport failures.
func (c *Conn) Records() (<-chan Record, <-chan error) {
	out := make(chan Record)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		reader := bufio.NewReaderSize(c.nc, 1<<16)
		buf := make([]byte, 4096)

		for {
			n, err := reader.Read(buf)
			if n > 0 {
				c.fs.Feed(buf[:n])
				c.drainFrames(out)
			}
			if err != nil {
				if err == io.EOF {
					return
				}
				errCh <- err
				return
			}
		}
	}()

	return out, errCh
}

func (c *Conn) drainFrames(out chan<- Record) {
	for {
		frame, ok := c.fs.Next()
		if !ok {
			return
		}

		var rr rawRecord
		if err := json.Unmarshal(frame, &rr); err != nil {
			if c.log != nil {
				c.log.WithError(err).Debug("skipping unparsable record")
			}
			continue
		}
		if rr.Vtime == nil || rr.Events == nil {
			if c.log != nil {
				c.log.Debug("skipping record missing vtime/events")
			}
			continue
		}

		var events []json.RawMessage
		if err := json.Unmarshal(*rr.Events, &events); err != nil {
			if c.log != nil {
				c.log.Debug("skipping record whose events field is not an array")
			}
			continue
		}

		out <- Record{Vtime: *rr.Vtime, Events: events}
	}
}
