package sandbox

import (
	"io"
	"strings"
	"testing"

	"github.com/jsbox-dev/jsbox/hostfunc"
)

func TestProtocolParsesValidCall(t *testing.T) {
	registry := hostfunc.NewRegistry()
	registry.Register("echo", func(args []string) (string, error) {
		return args[0], nil
	})

	_, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	handler.Write([]byte("\x00JSBOX:{\"fn\":\"echo\",\"args\":[\"hello\"]}\x00"))

	stderr := handler.Stderr()
	if stderr != "" {
		t.Errorf("expected no stderr output, got %q", stderr)
	}
}

func TestProtocolPassesThroughNonProtocolData(t *testing.T) {
	registry := hostfunc.NewRegistry()
	_, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	handler.Write([]byte("normal stderr output"))

	stderr := handler.Stderr()
	if stderr != "normal stderr output" {
		t.Errorf("expected 'normal stderr output', got %q", stderr)
	}
}

func TestProtocolHandlesMixedContent(t *testing.T) {
	registry := hostfunc.NewRegistry()
	registry.Register("noop", func(args []string) (string, error) {
		return "", nil
	})

	_, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	handler.Write([]byte("before\x00JSBOX:{\"fn\":\"noop\",\"args\":[]}\x00after"))

	stderr := handler.Stderr()
	if stderr != "beforeafter" {
		t.Errorf("expected 'beforeafter', got %q", stderr)
	}
}

func TestProtocolHandlesMalformedJSON(t *testing.T) {
	registry := hostfunc.NewRegistry()
	_, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	handler.Write([]byte("\x00JSBOX:{invalid}\x00continue"))

	stderr := handler.Stderr()
	if stderr != "continue" {
		t.Errorf("expected 'continue', got %q", stderr)
	}
}

func TestProtocolHandlesUnknownFunction(t *testing.T) {
	registry := hostfunc.NewRegistry()
	stdinReader, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	go func() {
		handler.Write([]byte("\x00JSBOX:{\"fn\":\"unknown\",\"args\":[]}\x00"))
	}()

	buf := make([]byte, 1024)
	n, _ := stdinReader.Read(buf)
	response := string(buf[:n])

	if !strings.Contains(response, "unknown function") {
		t.Errorf("expected 'unknown function' error, got %q", response)
	}
}

func TestProtocolReturnsHostError(t *testing.T) {
	registry := hostfunc.NewRegistry()
	registry.Register("boom", func(args []string) (string, error) {
		return "", io.ErrUnexpectedEOF
	})

	stdinReader, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	go func() {
		handler.Write([]byte("\x00JSBOX:{\"fn\":\"boom\",\"args\":[]}\x00"))
	}()

	buf := make([]byte, 1024)
	n, _ := stdinReader.Read(buf)
	response := string(buf[:n])

	if !strings.Contains(response, "unexpected EOF") {
		t.Errorf("expected host error in response, got %q", response)
	}
}

func TestProtocolHandlesPartialMessage(t *testing.T) {
	registry := hostfunc.NewRegistry()
	_, stdinWriter := io.Pipe()
	handler := newProtocolHandler(registry, stdinWriter)

	// Send partial message in chunks
	handler.Write([]byte("prefix\x00JSBOX:{\"fn\":"))
	handler.Write([]byte("\"test\",\"args\":[]}\x00suffix"))

	stderr := handler.Stderr()
	if stderr != "prefixsuffix" {
		t.Errorf("expected 'prefixsuffix', got %q", stderr)
	}
}
