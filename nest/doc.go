// Package nest builds nested structures through a sequence of named calls
// instead of literal structure syntax.
//
// A [Proxy] is handed to the callback given to [Build]. Every name the proxy
// does not recognize becomes a key assignment in the current scope, and a
// block argument opens a nested scope beneath that key:
//
//	m, err := nest.Build(func(p *nest.Proxy) error {
//		p.Set("price", 10)
//
//		return p.Hash("client", func() error {
//			p.Set("first_name", "Patrick")
//			p.Set("last_name", "Stewart")
//
//			first, _ := p.LocalDig("first_name")
//			last, _ := p.LocalDig("last_name")
//			p.Set("full_name", first.(string)+" "+last.(string))
//
//			return nil
//		})
//	})
//
// # Dispatch
//
// [Proxy.Call] is the catch-all entry point used by dynamic front ends such as
// the script package. Names ending in '?' or '!' are reserved for the proxy's
// own operations:
//
//	key!        set a key, or open a scope when given a block
//	hash!       open a nested scope
//	ary!        build a sequence (alias array!)
//	entry!      build a detached structure for a sequence element
//	dig!        look up a path from the root
//	local_dig!  look up a path from the current scope
//	key?        report whether a path from the root holds a non-nil value
//	local_key?  report whether a path from the current scope does
//
// Any other name has one trailing '=' removed and is assigned.
//
// # Keys
//
// Keys are written in one of two forms selected per proxy with
// [WithSymbolize]: symbol keys (the default) or text keys. Lookup segments
// are normalized to the same form, so callers may pass plain strings either
// way.
//
// # Scope
//
// Nested scopes live on an explicit stack. A scope is always closed when its
// body returns, whether by success, error, or panic, so lookups and writes
// that follow a failed block see the enclosing scope.
package nest
