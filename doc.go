// Package jsbox embeds a JavaScript interpreter behind a small,
// host-friendly surface: evaluate source text, push and pull scalar
// globals, call script functions, and expose Go closures as script
// globals.
//
// # Basic Usage
//
//	eng, _ := jsbox.New()
//	defer eng.Close()
//
//	out, _ := eng.Eval("'a'+'b'", "<eval>") // "ab"
//	n, _ := eng.EvalInt("1+2+3", "<eval>")  // 6
//
// # Host Functions
//
//	eng.RegisterFunc("multiply", func(args []string) (string, error) {
//	    a, _ := strconv.ParseFloat(args[0], 64)
//	    b, _ := strconv.ParseFloat(args[1], 64)
//	    return strconv.FormatFloat(a*b, 'f', -1, 64), nil
//	})
//	eng.Eval("multiply('5','10')", "<eval>") // "50"
//
// Only scalars cross the boundary: strings, 32-bit integers, doubles,
// and booleans. Script exceptions surface as typed errors; host
// closure errors surface to the calling script frame as exceptions.
//
// The [sandbox] package offers an alternative wasm-isolated backend
// for running untrusted one-shot scripts out of process.
//
// See the [vm], [hostfunc], and [sandbox] packages for detailed API
// documentation.
package jsbox
