// Package server implements the TCP front end: one line-oriented session
// per connection, each line handed to an Instrument and the reply written
// back with the same terminator the client used.
//
// Grounded on original_source/SCPI_Server/pi_server.py's splitter/handler
// pair, with the accept-loop/per-connection-goroutine shape following
// services/hal/worker.go's Start(ctx) convention.
package server

import (
	"bufio"
	"context"
	"log"
	"net"
)

// Instrument is the command surface a Server drives. instrument.Instrument
// satisfies it; tests substitute a stub.
type Instrument interface {
	Exec(line string) string
}

// Server accepts TCP connections and runs one session loop per connection
// against ins. It has no notion of concurrent overlapping commands: ins is
// expected to serialize execution itself (instrument.Instrument holds one
// mutex over the whole device).
type Server struct {
	ins Instrument
}

// New returns a Server dispatching every accepted connection's lines to
// ins.
func New(ins Instrument) *Server {
	return &Server{ins: ins}
}

// ListenAndServe listens on addr (e.g. ":4000") and serves connections
// until ctx is cancelled or accept fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.Printf("server: listening on %s", addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				log.Printf("server: accept: %v", err)
				return err
			}
		}
		go s.handle(conn)
	}
}

// handle runs one client's session loop: split its input into lines,
// terminated by "\r\n" or a bare "\n", exec each against ins, and write
// back the reply (if any) with the same terminator.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	log.Printf("server: connection from %s", conn.RemoteAddr())

	scanner := bufio.NewScanner(conn)
	scanner.Split(scanLinesKeepTerminator)
	for scanner.Scan() {
		line, terminator := splitTerminator(scanner.Text())
		reply := s.ins.Exec(line)
		if reply == "" {
			continue
		}
		if _, err := conn.Write([]byte(reply + terminator)); err != nil {
			log.Printf("server: write to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
	log.Printf("server: connection from %s closed", conn.RemoteAddr())
}
