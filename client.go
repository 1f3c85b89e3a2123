package unagi

import (
	"context"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Bytes per read from the server
const defaultReadSize = 10000

// Client sends one message per connection and copies whatever the server
// answers to Output until the server hangs up.
type Client struct {
	Address string

	// Zero means no timeout. Otherwise it bounds dialing and the whole
	// exchange after that.
	Timeout time.Duration

	// Decoded response text goes here. Invalid UTF-8 is replaced with
	// U+FFFD, never rejected.
	Output io.Writer

	Log      *zap.Logger
	ReadSize int
}

// Set up a new client talking to address
func NewClient(address string, options ...func(*Client)) *Client {
	c := &Client{
		Address:  address,
		Output:   os.Stdout,
		Log:      zap.NewNop(),
		ReadSize: defaultReadSize,
	}

	for _, f := range options {
		f(c)
	}

	return c
}

// Local returns the address of port on the local machine.
func Local(port int) string {
	return net.JoinHostPort("localhost", strconv.Itoa(port))
}

// Do sends a single request and streams the reply.
func (c *Client) Do(ctx context.Context, req *Request) error {
	return c.Send(ctx, req.Op.String(), req.Bytes())
}

// Send performs one request/response cycle: dial, write all of msg, close the
// write half, then stream the reply until EOF. command only labels logs and
// metrics. Dial errors are returned as-is; later I/O errors are wrapped.
func (c *Client) Send(ctx context.Context, command string, msg []byte) error {
	start := time.Now()
	result := "error"
	defer func() {
		requests.WithLabelValues(command, result).Inc()
		requestDurations.WithLabelValues(command).Observe(time.Since(start).Seconds())
	}()

	log := c.Log.With(zap.String("command", command), zap.String("address", c.Address))

	dialer := net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		log.Error("Could not connect", zap.Error(err))
		return err
	}
	defer conn.Close()
	log.Debug("Connected", zap.Stringer("local", conn.LocalAddr()))

	if deadline, ok := c.deadline(ctx, start); ok {
		conn.SetDeadline(deadline)
	}

	// Unblock reads and writes if the context goes away mid-exchange
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetDeadline(time.Now())
		case <-done:
		}
	}()

	// net.Conn.Write only returns early on error
	n, err := conn.Write(msg)
	sentBytes.WithLabelValues(command).Add(float64(n))
	if err != nil {
		log.Error("Send failed", zap.Int("bytes", n), zap.Error(err))
		return c.ctxErr(ctx, errors.Wrapf(err, "sending %s (%d of %d bytes written)", command, n, len(msg)))
	}
	log.Debug("Sent", zap.Int("bytes", n))

	if err := closeWrite(conn); err != nil {
		log.Error("Half-close failed", zap.Error(err))
		return c.ctxErr(ctx, errors.Wrap(err, "closing write half"))
	}

	received, err := streamText(c.Output, conn, c.ReadSize)
	receivedBytes.WithLabelValues(command).Add(float64(received))
	if err != nil {
		log.Error("Receive failed", zap.Int64("bytes", received), zap.Error(err))
		return c.ctxErr(ctx, errors.Wrapf(err, "receiving %s reply", command))
	}
	log.Debug("Server closed connection",
		zap.Int64("bytes", received),
		zap.Duration("took", time.Since(start)),
	)

	result = "ok"
	return nil
}

func (c *Client) deadline(ctx context.Context, start time.Time) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if c.Timeout > 0 {
		own := start.Add(c.Timeout)
		if !ok || own.Before(deadline) {
			return own, true
		}
	}
	return deadline, ok
}

// Prefers the context's error when it caused the I/O failure. The socket
// deadline may fire just before the context notices its own.
func (c *Client) ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return err
}

type halfCloser interface {
	CloseWrite() error
}

// Tells the server we're done sending, while still letting it answer.
func closeWrite(conn net.Conn) error {
	hc, ok := conn.(halfCloser)
	if !ok {
		return errors.Errorf("%T cannot half-close", conn)
	}
	return hc.CloseWrite()
}

// Copies r to w chunk by chunk, decoding UTF-8 on the way. A character
// split between two reads is held back until the rest arrives.
func streamText(w io.Writer, r io.Reader, size int) (int64, error) {
	if size <= 0 {
		size = defaultReadSize
	}
	tw := transform.NewWriter(w, unicode.UTF8.NewDecoder())

	// Hide any WriterTo, so reads happen through our buffer
	n, err := io.CopyBuffer(tw, struct{ io.Reader }{r}, make([]byte, size))
	if err != nil {
		return n, err
	}
	return n, tw.Close()
}

func (c *Client) SendPut(ctx context.Context, label, data string) error {
	return c.Do(ctx, Put(label, data))
}

func (c *Client) SendGet(ctx context.Context, query string) error {
	return c.Do(ctx, Get(query))
}

func (c *Client) SendGetc(ctx context.Context, query string) error {
	return c.Do(ctx, Getc(query))
}

func (c *Client) SendDump(ctx context.Context) error  { return c.Do(ctx, Dump()) }
func (c *Client) SendDumpc(ctx context.Context) error { return c.Do(ctx, Dumpc()) }
func (c *Client) SendSave(ctx context.Context) error  { return c.Do(ctx, Save()) }
func (c *Client) SendQuit(ctx context.Context) error  { return c.Do(ctx, Quit()) }

// SendFile sends the contents of a file staged with WriteMessageFile (or
// anything else) verbatim.
func (c *Client) SendFile(ctx context.Context, filename string) error {
	msg, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "reading message file")
	}
	return c.Send(ctx, "file", msg)
}
