package nest

import (
	"iter"
	"reflect"
	"slices"
	"strconv"
)

// Key identifies an entry in a [Map].
//
// Two keys with the same name but different forms are distinct, so a map
// built with symbol keys never matches lookups made with text keys.
type Key struct {
	Name   string
	Symbol bool
}

// Sym returns the symbol form of name.
func Sym(name string) Key { return Key{Name: name, Symbol: true} }

// Text returns the text form of name.
func Text(name string) Key { return Key{Name: name} }

// String returns the bare name of a symbol key or the quoted name of a text
// key.
func (k Key) String() string {
	if k.Symbol {
		return k.Name
	}

	return strconv.Quote(k.Name)
}

// Map is a mapping from [Key] to value that remembers insertion order.
//
// The zero value is not usable; create maps with [NewMap]. A nil *Map reads
// as empty.
type Map struct {
	keys []Key
	vals map[Key]any
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{vals: make(map[Key]any)}
}

// Get returns the value stored at k.
func (m *Map) Get(k Key) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.vals[k]

	return v, ok
}

// Set stores v at k and returns m. A new key is appended to the key order;
// an existing key keeps its position.
func (m *Map) Set(k Key, v any) *Map {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}

	m.vals[k] = v

	return m
}

// Delete removes k and reports whether it was present.
func (m *Map) Delete(k Key) bool {
	if m == nil {
		return false
	}

	if _, ok := m.vals[k]; !ok {
		return false
	}

	delete(m.vals, k)

	m.keys = slices.DeleteFunc(m.keys, func(x Key) bool { return x == k })

	return true
}

// Len returns the number of entries in m.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns an iterator over the keys of m in insertion order.
func (m *Map) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// All returns an iterator over the entries of m in insertion order.
func (m *Map) All() iter.Seq2[Key, any] {
	return func(yield func(Key, any) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m. Nested maps and sequences are shared.
func (m *Map) Clone() *Map {
	c := NewMap()
	if m == nil {
		return c
	}

	c.keys = slices.Clone(m.keys)

	for k, v := range m.vals {
		c.vals[k] = v
	}

	return c
}

// Equal reports whether m and o hold the same entries, comparing nested
// maps and sequences recursively. Key order is ignored.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}

	for k, v := range m.All() {
		w, ok := o.Get(k)
		if !ok || !equalValue(v, w) {
			return false
		}
	}

	return true
}

// String renders m with [Format].
func (m *Map) String() string { return Format(m) }

// Seq is an ordered, append-only list of values.
type Seq struct {
	items []any
}

// NewSeq returns a sequence holding items.
func NewSeq(items ...any) *Seq {
	return &Seq{items: slices.Clone(items)}
}

// Push appends values to s and returns s.
func (s *Seq) Push(values ...any) *Seq {
	s.items = append(s.items, values...)

	return s
}

// Len returns the number of values in s.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// At returns the value at index i. Negative indices count back from the end.
func (s *Seq) At(i int) (any, bool) {
	n := s.Len()
	if i < 0 {
		i += n
	}

	if i < 0 || i >= n {
		return nil, false
	}

	return s.items[i], true
}

// All returns an iterator over the indices and values of s.
func (s *Seq) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if s == nil {
			return
		}

		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of s.
func (s *Seq) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range s.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// String renders s with [Format].
func (s *Seq) String() string { return Format(s) }

// Kind classifies a value stored in a structure.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindMap
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindSeq:
		return "seq"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindOf returns the kind of v. Only *Map and *Seq are navigable; every other
// non-nil value, including native Go maps and slices, is a scalar.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case *Map:
		if t == nil {
			return KindNull
		}

		return KindMap
	case *Seq:
		if t == nil {
			return KindNull
		}

		return KindSeq
	default:
		return KindScalar
	}
}

func equalValue(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true

	case KindMap:
		return a.(*Map).Equal(b.(*Map)) //nolint:forcetypeassert

	case KindSeq:
		sa, sb := a.(*Seq), b.(*Seq) //nolint:forcetypeassert

		return slices.EqualFunc(sa.items, sb.items, equalValue)

	default:
		return reflect.DeepEqual(a, b)
	}
}
