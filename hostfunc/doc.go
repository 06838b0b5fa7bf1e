// Package hostfunc provides the registry of host closures callable
// from embedded script code, plus ready-made capability functions.
//
// Script code has no implicit access to host resources. Each
// capability is a plain [Func] the host registers under a global name:
//
//	registry := hostfunc.NewRegistry()
//	registry.Register("getVersion", func(args []string) (string, error) {
//	    return "1.0.0", nil
//	})
//
// # Built-in capabilities
//
// KV: in-memory string store via [KV].
//
//	kv := hostfunc.NewKV(hostfunc.DefaultKVConfig())
//	registry.Register("kv_get", kv.Get)
//	registry.Register("kv_set", kv.Set)
//
// Filesystem: mount-restricted access via [FS] and [Mount].
//
//	fs := hostfunc.NewFS([]hostfunc.Mount{
//	    {VirtualPath: "/data", HostPath: "./input", Mode: hostfunc.MountReadOnly},
//	})
//	registry.Register("readFile", fs.Read)
//
// HTTP: GET requests limited to an allow-list via [NewHTTPGet].
//
// All built-ins follow least privilege: filesystem access never
// escapes its mounts, HTTP is refused outside the allowed hosts, and
// sizes are capped.
package hostfunc
