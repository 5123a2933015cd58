package dsl

import "github.com/maproom/mafe/internal/ast"

// scopeStack resolves identifiers against the data bindings declared so
// far. A scope is pushed entering the map block and each layer block;
// the map scope stays for the whole file, so map-level bindings remain
// visible in every layer. Lookup walks from the innermost scope out and
// the first hit wins.
type scopeStack struct {
	scopes []map[string]*ast.DataBinding
}

func newScopeStack() *scopeStack {
	return &scopeStack{}
}

func (s *scopeStack) push() {
	s.scopes = append(s.scopes, make(map[string]*ast.DataBinding))
}

func (s *scopeStack) pop() {
	if len(s.scopes) > 0 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *scopeStack) put(binding *ast.DataBinding) {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes[len(s.scopes)-1][binding.Ident] = binding
}

func (s *scopeStack) get(name string) (*ast.DataBinding, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if b, ok := s.scopes[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}
