// Package sandbox runs untrusted JavaScript out of process: one-shot
// execution under QuickJS compiled to WASI, inside an isolated wazero
// runtime with zero default capabilities.
//
// This is the hard-isolation counterpart to the in-process engine at
// the repository root. The engine gives a rich boundary (globals,
// calls, typed results); the sandbox gives a process-like boundary
// where the only channels are stdout and explicitly registered host
// functions, and where a timeout can tear the interpreter down
// mid-run.
//
//	result := sandbox.Run(`print("hello")`, sandbox.DefaultConfig())
//	fmt.Print(result.Output)
//
// Host functions cross the boundary over a framed stderr/stdin
// protocol and appear to script code as hostcall(name, ...args).
package sandbox
