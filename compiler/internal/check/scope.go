package check

import "github.com/minipy/minipy/compiler/internal/diag"

type varInfo struct {
	kind     Kind
	declName string
	pos      diag.Pos

	read    bool
	written bool
}

type scope struct {
	parent *scope
	vars   map[string]*varInfo
	funcs  map[string]FuncSig
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: map[string]*varInfo{}, funcs: map[string]FuncSig{}}
}

func (s *scope) lookupVar(name string) (*varInfo, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *scope) lookupFunc(name string) (FuncSig, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if f, ok := cur.funcs[name]; ok {
			return f, true
		}
	}
	return FuncSig{}, false
}

func (s *scope) defineVar(name string, v *varInfo) { s.vars[name] = v }

// defineFunc reports whether name was already a function in this exact
// scope (not an ancestor); redefinition is only an error within one
// block, so shadowing an outer function is fine.
func (s *scope) defineFunc(name string, sig FuncSig) (redefined bool) {
	if _, exists := s.funcs[name]; exists {
		return true
	}
	s.funcs[name] = sig
	return false
}
