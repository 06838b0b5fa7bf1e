package sandbox

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	quickjswasi "github.com/paralin/go-quickjs-wasi"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/jsbox-dev/jsbox/hostfunc"
)

//go:embed shim.js
var shim string

// Result holds the output and metadata from one sandboxed run.
type Result struct {
	Output   string
	Duration time.Duration
	Error    error
}

// Config controls a sandboxed run.
type Config struct {
	Timeout  time.Duration
	Registry *hostfunc.Registry
	Logger   *zap.Logger
}

func DefaultConfig() Config {
	return Config{Timeout: 30 * time.Second}
}

// Run executes code one-shot under the QuickJS interpreter compiled to
// WASI, inside a fresh wazero runtime. Host functions from the
// registry are reachable from script as hostcall(name, ...args).
//
// Unlike the in-process engine, a sandboxed run can be cut off: the
// timeout tears the whole module down.
func Run(code string, cfg Config) Result {
	start := time.Now()

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	registry := cfg.Registry
	if registry == nil {
		registry = hostfunc.NewRegistry()
	}

	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	defer rt.Close(ctx)

	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	var stdout bytes.Buffer
	stdinReader, stdinWriter := io.Pipe()
	protocol := newProtocolHandler(registry, stdinWriter)

	fullCode := shim + "\n" + code

	moduleConfig := wazero.NewModuleConfig().
		WithStdout(&stdout).
		WithStderr(protocol).
		WithStdin(stdinReader).
		WithArgs("qjs", "--std", "-e", fullCode).
		WithName("quickjs")

	log.Debug("instantiating quickjs module",
		zap.Int("codeBytes", len(code)),
		zap.Duration("timeout", cfg.Timeout))

	errCh := make(chan error, 1)
	go func() {
		_, err := rt.InstantiateWithConfig(ctx, quickjswasi.QuickJSWASM, moduleConfig)
		stdinWriter.Close()
		errCh <- err
	}()

	err := <-errCh

	result := Result{
		Output:   stdout.String() + protocol.Stderr(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("timeout after %v", cfg.Timeout)
		} else {
			result.Error = fmt.Errorf("execution failed: %w", err)
		}
	}

	log.Debug("run finished",
		zap.Duration("duration", result.Duration),
		zap.Error(result.Error))

	return result
}
