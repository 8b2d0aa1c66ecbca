package nest

// Dig returns the value at path starting from the root.
//
// Each segment is a string or [Key] naming a map entry, normalized to the
// proxy's key form, or an int indexing a sequence (negative indices count
// back from the end). A missing segment, or a segment applied to a value
// that cannot hold it, yields (nil, false). An empty path yields the root.
func (p *Proxy) Dig(path ...any) (any, bool) {
	return p.dig(p.root, path)
}

// LocalDig is like [Proxy.Dig] but starts from the current scope.
func (p *Proxy) LocalDig(path ...any) (any, bool) {
	return p.dig(p.scope, path)
}

// Has reports whether path from the root holds a non-nil value.
// A key explicitly set to nil reports false.
func (p *Proxy) Has(path ...any) bool {
	v, ok := p.Dig(path...)

	return ok && v != nil
}

// LocalHas is like [Proxy.Has] but starts from the current scope.
func (p *Proxy) LocalHas(path ...any) bool {
	v, ok := p.LocalDig(path...)

	return ok && v != nil
}

func (p *Proxy) dig(from *Map, path []any) (any, bool) {
	var cur any = from

	for _, seg := range path {
		var ok bool

		switch s := seg.(type) {
		case string:
			cur, ok = lookupKey(cur, p.key(s))

		case Key:
			cur, ok = lookupKey(cur, p.key(s.Name))

		case int:
			cur, ok = lookupIndex(cur, s)

		default:
			return nil, false
		}

		if !ok {
			return nil, false
		}
	}

	return cur, true
}

func lookupKey(v any, k Key) (any, bool) {
	m, ok := v.(*Map)
	if !ok {
		return nil, false
	}

	return m.Get(k)
}

func lookupIndex(v any, i int) (any, bool) {
	s, ok := v.(*Seq)
	if !ok {
		return nil, false
	}

	return s.At(i)
}
