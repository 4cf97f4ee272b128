package evaluator

// Env is a scope for name resolution. Chirp uses exactly two levels:
// the global frame holding constants and top-level bindings, and a
// per-call parameter frame whose parent is always the global frame.
// Function bodies never capture their caller's frame.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates an environment with the given parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Get looks up a name, walking parent scopes.
func (e *Env) Get(name string) (Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Set binds a name in this scope.
func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

// Has reports whether a name is bound in this scope only, ignoring parents.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}
