package runtime

// choice is an optional child index.
type choice struct {
	index int
	ok    bool
}

var none = choice{}

func pick(i int) choice {
	return choice{index: i, ok: true}
}

// in reports whether the choice names one of n children.
func (c choice) in(n int) bool {
	return c.ok && c.index >= 0 && c.index < n
}
