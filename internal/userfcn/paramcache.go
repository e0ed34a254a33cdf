package userfcn

// ParamCache remembers the last parameter vector of an expensive calculation
// so that it is only redone when the parameters change.
type ParamCache struct {
	prev       []float64
	ignore     map[int]bool
	recomputes int
}

// NewParamCache returns a cache which does not compare the given indices.
func NewParamCache(ignore ...int) *ParamCache {
	c := &ParamCache{}
	if len(ignore) > 0 {
		c.ignore = make(map[int]bool, len(ignore))
		for _, i := range ignore {
			c.ignore[i] = true
		}
	}
	return c
}

// Changed reports whether param differs from the last vector and, if so,
// stores a copy of it. The first call always reports a change, as does a
// change of the vector length.
func (c *ParamCache) Changed(param []float64) bool {
	if c.prev != nil && len(c.prev) == len(param) {
		same := true
		for i, v := range param {
			if c.ignore[i] {
				continue
			}
			if v != c.prev[i] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}

	c.prev = append(c.prev[:0], param...)
	if c.prev == nil {
		c.prev = []float64{}
	}
	c.recomputes++
	return true
}

// Recomputes counts how often Changed reported a change.
func (c *ParamCache) Recomputes() int { return c.recomputes }

// Reset forgets the stored vector.
func (c *ParamCache) Reset() { c.prev = nil }
