package world

import "strconv"

// Handle names an entity. The low 32 bits are a slot index, the high 32 bits
// the slot generation, so a handle to a removed entity never resolves to the
// entity that later reuses its slot.
type Handle uint64

const indexBits = 32

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<indexBits | uint64(index))
}

// Index is the slot index.
func (h Handle) Index() uint32 {
	return uint32(h)
}

// Generation is the slot generation.
func (h Handle) Generation() uint32 {
	return uint32(uint64(h) >> indexBits)
}

// Valid reports whether h was ever issued.
func (h Handle) Valid() bool {
	return h.Index() > 0
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.Index()), 10) + "v" + strconv.FormatUint(uint64(h.Generation()), 10)
}

// entityStore hands out handles and tracks which are alive. Index 0 is never
// issued.
type entityStore struct {
	gen   []uint32
	alive []bool
	free  []uint32
}

func (s *entityStore) create() Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		idx = uint32(len(s.gen))
	}
	s.alive[idx-1] = true
	return makeHandle(idx, s.gen[idx-1])
}

func (s *entityStore) destroy(h Handle) bool {
	if !s.isAlive(h) {
		return false
	}
	i := h.Index() - 1
	s.alive[i] = false
	s.gen[i]++
	s.free = append(s.free, h.Index())
	return true
}

func (s *entityStore) isAlive(h Handle) bool {
	i := int(h.Index()) - 1
	if i < 0 || i >= len(s.gen) {
		return false
	}
	return s.alive[i] && s.gen[i] == h.Generation()
}

func (s *entityStore) count() int {
	n := 0
	for _, a := range s.alive {
		if a {
			n++
		}
	}
	return n
}
