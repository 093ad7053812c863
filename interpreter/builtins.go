package interpreter

import (
	"fmt"
	"time"

	"clou/module"
	"clou/object"
	"clou/value"
)

// installBuiltins registers the global functions of §4.5: print, len,
// clock, and require. require is a no-op-at-call-site error if the
// engine was constructed without a loader.
func (i *Interpreter) installBuiltins() {
	i.globals.Define("print", &object.NativeFunction{
		Name:     "print",
		Variadic: true,
		Fn:       i.nativePrint,
	}, true)

	i.globals.Define("len", &object.NativeFunction{
		Name:  "len",
		Arity: 1,
		Fn:    nativeLen,
	}, true)

	i.globals.Define("clock", &object.NativeFunction{
		Name:  "clock",
		Arity: 0,
		Fn:    nativeClock,
	}, true)

	i.globals.Define("require", &object.NativeFunction{
		Name:  "require",
		Arity: 1,
		Fn:    i.nativeRequire,
	}, true)
}

// nativePrint joins its arguments' default stringification with single
// spaces and writes one line (§4.5/§8).
func (i *Interpreter) nativePrint(args []value.Value) value.Value {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = value.Stringify(a)
	}
	out := ""
	for idx, p := range parts {
		if idx > 0 {
			out += " "
		}
		out += p
	}
	fmt.Fprintln(i.out, out)
	return value.Nil{}
}

func nativeLen(args []value.Value) value.Value {
	switch v := args[0].(type) {
	case *value.Array:
		return value.Number(len(v.Elements))
	case value.String:
		return value.Number(len(v))
	case *value.Object:
		return value.Number(v.Len())
	default:
		panic(object.NativeError{Message: "len() expects an array, string, or object."})
	}
}

func nativeClock(args []value.Value) value.Value {
	return value.Number(float64(time.Now().UnixNano()) / 1e9)
}

// nativeRequire implements §4.4 require(path): cache hit short-circuits;
// otherwise a fresh exports Object is cached before the module body
// runs (so a cyclic require sees the in-progress exports rather than
// recursing), evaluated in a fresh module environment parented to
// globals, and the exports object is returned.
func (i *Interpreter) nativeRequire(args []value.Value) value.Value {
	if i.loader == nil {
		panic(object.NativeError{Message: "No module system configured."})
	}
	path, ok := args[0].(value.String)
	if !ok {
		panic(object.NativeError{Message: "require() expects a string path."})
	}

	resolvedPath, content, err := i.loader.GetModuleSource(string(path), i.currentDir)
	if err != nil {
		panic(object.NativeError{Message: err.Error()})
	}

	if cached, ok := i.loader.GetCached(resolvedPath); ok {
		return cached
	}

	exports := value.NewObject()
	i.loader.Cache(resolvedPath, exports)

	stmts, perr := parseSource(content)
	if perr != nil {
		panic(perr)
	}

	moduleEnv := object.NewModuleEnvironment(i.globals)
	moduleEnv.Define("exports", exports, false)

	previousEnv, previousDir := i.environment, i.currentDir
	i.environment = moduleEnv
	i.currentDir = module.DirOf(resolvedPath)
	defer func() {
		i.environment = previousEnv
		i.currentDir = previousDir
	}()

	for _, s := range stmts {
		i.execute(s)
	}

	return exports
}
