// Package script is a textual front end for the nest builder.
//
// A script is a list of statements. Each assignment is dispatched by name
// through [nest.Proxy.Call], exactly as if the name had been called on the
// proxy, so the script and the Go API build identical structures.
//
// # Grammar
//
// Informal EBNF:
//
//	Script     → Statement* EOF
//	Statement  → Assignment | Condition
//	Assignment → Name (':' | '=') Value
//	Condition  → 'if' Expression Block ('else' (Block | Condition))?
//	Value      → Block | Array | Expression
//	Block      → '{' (Statement (Sep Statement)* Sep?)? '}'
//	Array      → '[' (Element (',' Element)* ','?)? ']'
//	Element    → Block | Expression
//	Sep        → ';' | ',' | line break
//	Name       → Identifier ('?' | '!')? | QuotedString
//	Expression → <balanced text, ends at an unbalanced closer, or a
//	              top-level ';', ',', line break, or comment>
//
// Comments start with '#' or '//' and run to the end of the line, or are
// enclosed in '/*' and '*/'. Inside parentheses and brackets '#' is left to
// the expression, where it names the current element of a predicate.
//
// # Example
//
//	price: 10
//	client: {
//	  first_name: "Patrick"
//	  last_name = "Stewart"       # '=' is accepted as well as ':'
//	  full_name: local_dig("first_name") + " " + local_dig("last_name")
//	}
//	features: [
//	  { name: "dynamic" },
//	  { name: "object_oriented" },
//	]
//	if dig("price") > 5 {
//	  discount: true
//	} else {
//	  discount: false
//	}
//
// # Values
//
// A block opens a nested scope at the name. An array builds a sequence whose
// block elements are detached entries: inside an entry, lookups see only the
// entry itself. Every other value is an expr-lang expression evaluated when
// its statement runs, so it can refer to anything written before it.
//
// # Environment
//
// Expressions see these names:
//
//	dig(path...)           value at path from the root, or nil
//	local_dig(path...)     value at path from the current scope, or nil
//	exists(path...)        whether the root path holds a non-nil value
//	local_exists(path...)  whether the local path holds a non-nil value
//	env(name)              process environment variable
//	cwd()                  working directory
//	hostname               host name
//	platform, target       {OS, Arch} in Go and GNU naming
//	path.abs, path.cat, path.base, path.dir
//	mung.prefix, mung.prefixif
//
// Path segments are strings naming keys or ints indexing sequences.
//
// # Reserved names
//
// A name ending in '?' or '!' calls the operation of that name, and any name
// the proxy does not define fails with [nest.ErrUnknownOperation]. For
// example:
//
//	key!: "empty"    # same as: empty: nil
//	nope!: 1         # error
package script
