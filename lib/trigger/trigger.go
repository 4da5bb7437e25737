// Package trigger computes which fields must re-validate when a field changes.
//
// Each field may declare triggers: other fields to validate whenever it
// changes. Related expands those declarations transitively. The declared
// relation is never trusted to be acyclic.
package trigger

// Lookup returns the fields directly triggered by name.
type Lookup func(name string) []string

// Related returns every field reachable from name through the trigger
// relation, in depth-first discovery order, excluding name itself.
//
// A single visited set spans the whole traversal: once a field has been
// reached it is never expanded again, even when it is reached a second time
// along a different path. Cycles therefore terminate silently.
func Related(name string, lookup Lookup) []string {
	if lookup == nil {
		return nil
	}
	visited := map[string]struct{}{name: {}}
	var out []string

	var walk func(string)
	walk = func(from string) {
		for _, next := range lookup(from) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			out = append(out, next)
			walk(next)
		}
	}
	walk(name)

	return out
}

// Map is a static trigger declaration usable as a Lookup.
type Map map[string][]string

// Lookup implements the Lookup signature over the map.
func (m Map) Lookup(name string) []string {
	return m[name]
}

// Cycles reports the distinct trigger cycles declared in m, each as the path
// of names that leads back to its first element. Cycles are legal; this is
// for diagnostics only.
func Cycles(m Map, names []string) [][]string {
	const (
		unseen = iota
		active
		done
	)
	state := make(map[string]int, len(m))
	var stack []string
	var cycles [][]string

	var visit func(string)
	visit = func(n string) {
		state[n] = active
		stack = append(stack, n)
		for _, next := range m[n] {
			switch state[next] {
			case unseen:
				visit(next)
			case active:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						cycle := append([]string(nil), stack[i:]...)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
	}

	for _, n := range names {
		if state[n] == unseen {
			visit(n)
		}
	}
	return cycles
}
