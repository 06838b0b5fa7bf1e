package sandbox

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/jsbox-dev/jsbox/hostfunc"
)

// Protocol constants - used by the embedded shim to call back into the
// host. Format: \x00JSBOX:{json}\x00 on stderr, one JSON response line
// on stdin.
const (
	protocolPrefix = "\x00JSBOX:"
	protocolSuffix = "\x00"
)

type callRequest struct {
	Fn   string   `json:"fn"`
	Args []string `json:"args"`
}

type callResponse struct {
	Data  string `json:"data"`
	Error string `json:"error,omitempty"`
}

// protocolHandler intercepts stderr to handle host function calls.
// Regular stderr output passes through; protocol frames trigger host
// calls.
type protocolHandler struct {
	registry    *hostfunc.Registry
	stdinWriter *io.PipeWriter
	realStderr  bytes.Buffer
	buf         bytes.Buffer
	mu          sync.Mutex
}

func newProtocolHandler(registry *hostfunc.Registry, stdinWriter *io.PipeWriter) *protocolHandler {
	return &protocolHandler{
		registry:    registry,
		stdinWriter: stdinWriter,
	}
}

func (p *protocolHandler) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf.Write(data)

	for {
		content := p.buf.String()
		startIdx := strings.Index(content, protocolPrefix)
		if startIdx == -1 {
			p.realStderr.WriteString(content)
			p.buf.Reset()
			break
		}

		p.realStderr.WriteString(content[:startIdx])

		endIdx := strings.Index(content[startIdx+len(protocolPrefix):], protocolSuffix)
		if endIdx == -1 {
			p.buf.Reset()
			p.buf.WriteString(content[startIdx:])
			break
		}

		jsonStr := content[startIdx+len(protocolPrefix) : startIdx+len(protocolPrefix)+endIdx]
		p.buf.Reset()
		p.buf.WriteString(content[startIdx+len(protocolPrefix)+endIdx+1:])

		var req callRequest
		if err := json.Unmarshal([]byte(jsonStr), &req); err != nil {
			p.respond(callResponse{Error: "invalid call format"})
			continue
		}

		resp := p.handleCall(req)
		p.respond(resp)
	}

	return len(data), nil
}

func (p *protocolHandler) respond(resp callResponse) {
	data, _ := json.Marshal(resp)
	go p.stdinWriter.Write(append(data, '\n'))
}

func (p *protocolHandler) handleCall(req callRequest) callResponse {
	fn, ok := p.registry.Get(req.Fn)
	if !ok {
		return callResponse{Error: "unknown function: " + req.Fn}
	}

	result, err := fn(req.Args)
	if err != nil {
		return callResponse{Error: err.Error()}
	}
	return callResponse{Data: result}
}

func (p *protocolHandler) Stderr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.realStderr.String()
}
