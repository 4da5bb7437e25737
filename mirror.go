package hxform

import "slices"

// mirrors tracks read-only observers bound to field names. Many observers
// may watch one field; each binding is removed individually.
type mirrors struct {
	bindings map[string][]Mirror
}

func newMirrors() *mirrors {
	return &mirrors{bindings: make(map[string][]Mirror)}
}

func (m *mirrors) register(name string, obs Mirror) {
	if slices.Contains(m.bindings[name], obs) {
		return
	}
	m.bindings[name] = append(m.bindings[name], obs)
}

func (m *mirrors) unregister(name string, obs Mirror) bool {
	list := m.bindings[name]
	i := slices.Index(list, obs)
	if i < 0 {
		return false
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(m.bindings, name)
	} else {
		m.bindings[name] = list
	}
	return true
}

func (m *mirrors) observers(name string) []Mirror {
	return slices.Clone(m.bindings[name])
}
