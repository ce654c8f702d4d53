package imap

import (
	"bufio"
	"net"
	"testing"
	"time"
)

// pipeTransport builds a TCPTransport wired to one end of an in-memory
// net.Pipe, with the other end returned for the test to act as the
// fake server.
func pipeTransport(t *testing.T) (*TCPTransport, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	tr := &TCPTransport{}
	tr.conn = client
	tr.reader = bufio.NewReader(client)
	t.Cleanup(func() { client.Close(); server.Close() })
	return tr, server
}

func TestReadResponseStopsAtTaggedTerminator(t *testing.T) {
	tr, server := pipeTransport(t)

	go func() {
		server.Write([]byte("* 1 EXISTS\r\nA0001 OK SELECT completed\r\n"))
	}()

	blob, err := tr.ReadResponse("A0001")
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	want := "* 1 EXISTS\r\nA0001 OK SELECT completed\r\n"
	if blob != want {
		t.Errorf("blob = %q, want %q", blob, want)
	}
}

func TestReadResponseConsumesLiteralBytes(t *testing.T) {
	tr, server := pipeTransport(t)

	go func() {
		server.Write([]byte("* 1 FETCH (BODY[TEXT] {10}\r\nA0002 OK\r\n)\r\nA0002 OK FETCH completed\r\n"))
	}()

	blob, err := tr.ReadResponse("A0002")
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	// The literal's bytes look like a tagged terminator; they must be
	// consumed as payload, not end the response early.
	want := "* 1 FETCH (BODY[TEXT] {10}\r\nA0002 OK\r\n)\r\nA0002 OK FETCH completed\r\n"
	if blob != want {
		t.Fatalf("blob = %q, want %q", blob, want)
	}
}

func TestReadResponseRejectsOversizedLiteral(t *testing.T) {
	tr, server := pipeTransport(t)
	tr.MaxLiteralSize = 4

	go func() {
		server.Write([]byte("* 1 FETCH (BODY[TEXT] {100}\r\n"))
	}()

	_, err := tr.ReadResponse("A0003")
	if err == nil {
		t.Fatal("expected error for literal exceeding MaxLiteralSize")
	}
}

func TestReadLineReadsRawLine(t *testing.T) {
	tr, server := pipeTransport(t)

	go func() {
		server.Write([]byte("+ idling\r\n"))
	}()

	line, err := tr.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "+ idling\r\n" {
		t.Errorf("line = %q", line)
	}
}

func TestSetDeadlineOnUnconnectedTransportErrors(t *testing.T) {
	tr := &TCPTransport{}
	if err := tr.SetDeadline(time.Now()); err == nil {
		t.Error("expected error setting deadline on an unconnected transport")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	tr, _ := pipeTransport(t)
	if err := tr.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestTrailingLiteralCount(t *testing.T) {
	tests := []struct {
		line string
		want int64
		ok   bool
	}{
		{"* 1 FETCH (BODY[TEXT] {14}\r\n", 14, true},
		{"* 1 FETCH (FLAGS (\\Seen))\r\n", 0, false},
		{"{abc}\r\n", 0, false},
	}
	for _, tt := range tests {
		n, ok := trailingLiteralCount(tt.line)
		if ok != tt.ok || (ok && n != tt.want) {
			t.Errorf("trailingLiteralCount(%q) = (%d, %v), want (%d, %v)", tt.line, n, ok, tt.want, tt.ok)
		}
	}
}

func TestIsTaggedTerminator(t *testing.T) {
	if !isTaggedTerminator("A0001 OK done", "A0001") {
		t.Error("expected match")
	}
	if !isTaggedTerminator("A0001 NO failed", "A0001") {
		t.Error("expected match for NO status")
	}
	if !isTaggedTerminator("A0001 BAD syntax error", "A0001") {
		t.Error("expected match for BAD status")
	}
	if isTaggedTerminator("A0002 OK done", "A0001") {
		t.Error("expected no match for different tag")
	}
	if isTaggedTerminator("A0001 something else entirely", "A0001") {
		t.Error("expected no match when the tag isn't followed by OK/NO/BAD")
	}
}
