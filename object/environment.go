package object

import (
	"fmt"

	"clou/value"
)

// binding is a single name's slot in an Environment frame: the value it
// holds, and whether it was declared with `const` (§3).
type binding struct {
	value   value.Value
	isConst bool
}

// Environment is a frame in the name-based lexical scope chain described
// in §3: each frame maps name to {value, is_const} and has at most one
// parent. This intentionally does not resolve names to slot/distance
// pairs at parse time the way a scope-indexed interpreter would — every
// lookup walks the chain at runtime, which is what lets `require`'d
// modules and REPL statements share and mutate the same global frame
// without a fixed compile-time scope depth.
type Environment struct {
	enclosing *Environment
	values    map[string]*binding

	// moduleActiveCalls is non-nil only for a module's root environment
	// (the one require() creates). It implements the §4.4/§9 cycle-break
	// sentinel: a set of function names currently executing somewhere in
	// that module's call graph.
	moduleActiveCalls map[string]bool
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]*binding)}
}

// NewModuleEnvironment creates a module's root environment (parent is
// always globals per §4.4 step 3) with cycle-break tracking enabled.
func NewModuleEnvironment(globals *Environment) *Environment {
	return &Environment{
		enclosing:         globals,
		values:            make(map[string]*binding),
		moduleActiveCalls: make(map[string]bool),
	}
}

// EnterCall looks up the chain from env for the nearest module
// environment and reports whether name is already active there. If not
// active, it marks it active and returns a release function the caller
// must call when done; if already active (a cyclic re-entry), ok is
// false and release is a no-op. An environment chain with no module
// ancestor (e.g. the top-level script) never suppresses re-entry.
func EnterCall(env *Environment, name string) (release func(), ok bool) {
	for e := env; e != nil; e = e.enclosing {
		if e.moduleActiveCalls == nil {
			continue
		}
		if e.moduleActiveCalls[name] {
			return func() {}, false
		}
		e.moduleActiveCalls[name] = true
		return func() { delete(e.moduleActiveCalls, name) }, true
	}
	return func() {}, true
}

// Define introduces name in this frame, shadowing any binding of the
// same name in an enclosing frame. Redeclaring a name already present in
// this exact frame overwrites it (the parser is responsible for
// rejecting duplicate declarations where the language disallows them).
func (e *Environment) Define(name string, v value.Value, isConst bool) {
	e.values[name] = &binding{value: v, isConst: isConst}
}

// Get walks the chain looking for name, per §4.3.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if b, ok := env.values[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign walks the chain and updates the nearest binding of name. It
// reports an error for an unknown name (no implicit global creation) or
// for a const binding.
func (e *Environment) Assign(name string, v value.Value) error {
	for env := e; env != nil; env = env.enclosing {
		if b, ok := env.values[name]; ok {
			if b.isConst {
				return fmt.Errorf("Cannot reassign const variable '%s'", name)
			}
			b.value = v
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'", name)
}

func (e *Environment) Enclosing() *Environment { return e.enclosing }
