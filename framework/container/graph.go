package container

// The dependency graph is checked once at build time over the registration
// table, never over live instances. Each registration is a node; a single
// dependency points at the last registration of its key, an All dependency
// points at every registration of its key.

type color uint8

const (
	white color = iota // unvisited
	gray               // on the current path
	black              // fully explored
)

type cycleFinder struct {
	catalog *Catalog
	colors  map[int]color
	path    []ServiceKey
	nodes   []int
}

// findCycle returns the first cycle found walking registrations in
// registration order, or nil.
func findCycle(c *Catalog) []ServiceKey {
	f := &cycleFinder{catalog: c, colors: make(map[int]color, len(c.registrations))}
	for _, reg := range c.registrations {
		if f.colors[reg.id] != white {
			continue
		}
		if cycle := f.visit(reg, reg.primary()); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (f *cycleFinder) visit(reg *Registration, via ServiceKey) []ServiceKey {
	f.colors[reg.id] = gray
	f.path = append(f.path, via)
	f.nodes = append(f.nodes, reg.id)

	for _, d := range reg.deps {
		for _, next := range f.targets(d) {
			switch f.colors[next.id] {
			case gray:
				return f.cycleTo(next.id)
			case white:
				if cycle := f.visit(next, d.Key); cycle != nil {
					return cycle
				}
			}
		}
	}

	f.path = f.path[:len(f.path)-1]
	f.nodes = f.nodes[:len(f.nodes)-1]
	f.colors[reg.id] = black
	return nil
}

func (f *cycleFinder) targets(d Dependency) []*Registration {
	if d.All {
		return f.catalog.Lookup(d.Key)
	}
	if reg, ok := f.catalog.last(d.Key); ok {
		return []*Registration{reg}
	}
	return nil
}

// cycleTo returns the keys on the path from node id to the top of the stack.
func (f *cycleFinder) cycleTo(id int) []ServiceKey {
	for i := len(f.nodes) - 1; i >= 0; i-- {
		if f.nodes[i] == id {
			return append([]ServiceKey(nil), f.path[i:]...)
		}
	}
	return append([]ServiceKey(nil), f.path...)
}
