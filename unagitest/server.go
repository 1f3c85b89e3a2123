// Package unagitest provides an in-process unagi server for tests, in the
// spirit of net/http/httptest.
package unagitest

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/msiebuhr/unagi"
)

// Handler answers a single decoded request. Returning an error closes the
// connection.
type Handler func(req *unagi.Request, w io.Writer) error

type Server struct {
	// Host:port the server listens on, always on the loopback interface
	Addr string

	Repo    *Repository
	Handler Handler
	Log     *zap.Logger

	listener  *net.TCPListener
	closer    chan bool
	waitGroup *sync.WaitGroup

	lock     sync.Mutex
	received []unagi.Request
}

// NewServer starts a server on a random loopback port. Options run before
// it starts listening. Callers should Close it when done.
func NewServer(options ...func(*Server)) *Server {
	s := &Server{
		Repo:      NewRepository(),
		Log:       zap.NewNop(),
		closer:    make(chan bool),
		waitGroup: &sync.WaitGroup{},
	}

	for _, f := range options {
		f(s)
	}
	if s.Handler == nil {
		s.Handler = s.Respond
	}

	listener, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		panic(fmt.Sprintf("unagitest: failed to listen: %v", err))
	}
	s.listener = listener
	s.Addr = listener.Addr().String()
	s.Log.Debug("Listening", zap.String("address", s.Addr))

	s.waitGroup.Add(1)
	go s.serve()

	return s
}

// Port the server listens on
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Close stops accepting connections and waits for open ones to finish.
func (s *Server) Close() {
	close(s.closer)
	s.listener.Close()
	s.waitGroup.Wait()
}

// Received returns a copy of every request decoded so far.
func (s *Server) Received() []unagi.Request {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]unagi.Request, len(s.received))
	copy(out, s.received)
	return out
}

func (s *Server) serve() {
	defer s.waitGroup.Done()

	for {
		conn, err := s.listener.AcceptTCP()
		if err != nil {
			select {
			case <-s.closer:
				s.Log.Debug("Stopping listening")
				return
			default:
			}
			s.Log.Warn("Error accepting", zap.Error(err))
			continue
		}

		s.waitGroup.Add(1)
		go s.handleRequest(conn)
	}
}

// Reads requests until the client half-closes, answering each in turn.
func (s *Server) handleRequest(conn net.Conn) {
	log := s.Log.With(zap.Stringer("addr", conn.RemoteAddr()))
	defer func() {
		log.Debug("Closing connection")
		conn.Close()
		s.waitGroup.Done()
	}()

	conn.SetDeadline(time.Now().Add(30 * time.Second))

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	defer w.Flush()

	for {
		req, err := unagi.ReadRequest(r)
		if err == io.EOF {
			log.Debug("Client hangup")
			return
		} else if err != nil {
			log.Info("Bad request", zap.Error(err))
			fmt.Fprintf(w, "NG %s\n", err)
			return
		}

		log.Debug("Got request", zap.Stringer("request", req))
		s.lock.Lock()
		s.received = append(s.received, *req)
		s.lock.Unlock()

		if req.Op == unagi.OP_QUIT {
			return
		}

		if err := s.Handler(req, w); err != nil {
			log.Info("Handler failed", zap.Error(err))
			return
		}
		if err := w.Flush(); err != nil {
			log.Info("Error writing reply", zap.Error(err))
			return
		}
	}
}

// Respond answers req from s.Repo using the reply formats of the real
// server.
func (s *Server) Respond(req *unagi.Request, w io.Writer) error {
	var err error
	switch req.Op {
	case unagi.OP_PUT:
		_, err = fmt.Fprintf(w, "OK %d\n", s.Repo.Put(req.Label, req.Data))
	case unagi.OP_GETC:
		_, err = fmt.Fprintf(w, "OK %d\n", s.Repo.Count(req.Query))
	case unagi.OP_GET:
		occs := s.Repo.Query(req.Query)
		if _, err = fmt.Fprintf(w, "OK %d\n", len(occs)); err != nil {
			return err
		}
		for _, o := range occs {
			_, err = fmt.Fprintf(w, "%d %s %d %d %s\n",
				len(o.Document.Label), o.Document.Label, o.Offset, len(o.Snippet), o.Snippet)
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "0\n")
	case unagi.OP_DUMP:
		docs := s.Repo.Dump()
		if _, err = fmt.Fprintf(w, "OK %d\n", len(docs)); err != nil {
			return err
		}
		for _, d := range docs {
			_, err = fmt.Fprintf(w, "%d %s %d %s\n", len(d.Label), d.Label, len(d.Data), d.Data)
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "0\n")
	case unagi.OP_DUMPC:
		_, err = fmt.Fprintf(w, "OK %d\n", s.Repo.Len())
	case unagi.OP_SAVE:
		_, err = fmt.Fprintf(w, "OK %d\n", s.Repo.Save())
	default:
		_, err = fmt.Fprintf(w, "NG unsupported command %s\n", req.Op)
	}
	return err
}
