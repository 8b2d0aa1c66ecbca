package script

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// parser holds the parser state.
type parser struct {
	input []byte
	pos   int
	line  int
	col   int
}

func newParser(src string) *parser {
	return &parser{
		input: []byte(src),
		line:  1,
		col:   1,
	}
}

// parseScript parses the entire input as a list of statements.
func (p *parser) parseScript() (*AST, error) {
	ast := &AST{
		Statements: make([]*Statement, 0),
		Source:     string(p.input),
	}

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			break
		}

		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		ast.Statements = append(ast.Statements, st)

		if err := p.parseSeparator(); err != nil {
			return nil, err
		}
	}

	return ast, nil
}

// parseSeparator consumes the optional separator after a statement.
// A statement must be followed by a separator, a line break, a closing
// brace, or the end of input.
func (p *parser) parseSeparator() error {
	sawBreak := p.skipWhitespaceAndComments()

	switch {
	case p.eof(), p.peek() == '}':
		return nil

	case p.peek() == ';' || p.peek() == ',':
		p.advance()

		return nil

	case sawBreak:
		return nil

	default:
		return p.errorf("';', ',' or line break")
	}
}

// parseStatement parses: Assignment | Condition.
func (p *parser) parseStatement() (*Statement, error) {
	pos := p.position()

	name, quoted, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if !quoted && name == "if" && !p.atAssign() {
		return p.parseCondition(pos)
	}

	p.skipWhitespaceAndComments()

	var setter bool

	switch {
	case p.expect(':'):
	case p.peek() == '=' && p.peekN(2) != "==":
		p.advance()

		setter = true

	default:
		return nil, p.errorf("':' or '='")
	}

	p.skipWhitespaceAndComments()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &Statement{
		Kind:   StmtAssign,
		Pos:    pos,
		Name:   name,
		Setter: setter,
		Value:  value,
	}, nil
}

// parseCondition parses the remainder of: 'if' Expression Block ('else'
// (Block | Condition))?. The 'if' keyword has been consumed.
func (p *parser) parseCondition(pos Position) (*Statement, error) {
	p.skipWhitespaceAndComments()

	cond, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Kind: StmtIf,
		Pos:  pos,
		Cond: cond,
		Then: then,
	}

	// Look past whitespace for 'else' without consuming a statement boundary
	// when there is none.
	saved := *p

	p.skipWhitespaceAndComments()

	if !p.atKeyword("else") {
		*p = saved

		return st, nil
	}

	p.pos += len("else")
	p.col += len("else")
	p.skipWhitespaceAndComments()

	if p.atKeyword("if") {
		elsePos := p.position()

		p.pos += len("if")
		p.col += len("if")

		nested, err := p.parseCondition(elsePos)
		if err != nil {
			return nil, err
		}

		st.Else = &Value{Kind: KindBlock, Body: []*Statement{nested}, Pos: elsePos}

		return st, nil
	}

	if st.Else, err = p.parseBlock(); err != nil {
		return nil, err
	}

	return st, nil
}

// parseName parses an identifier, optionally ending in '?' or '!', or a
// double-quoted string.
func (p *parser) parseName() (string, bool, error) {
	switch ch := p.peek(); {
	case ch == '"' || ch == '`':
		start := p.pos
		if err := p.skipString(ch); err != nil {
			return "", true, err
		}

		name, err := strconv.Unquote(string(p.input[start:p.pos]))
		if err != nil {
			return "", true, p.errorf("valid quoted name")
		}

		return name, true, nil

	case isIdentifierStart(ch):
		name := p.parseIdentifier()

		if c := p.peek(); c == '?' || c == '!' {
			p.advance()

			name += string(c)
		}

		return name, false, nil

	default:
		return "", false, p.errorf("name")
	}
}

// parseValue parses: Block | Array | Expression.
func (p *parser) parseValue() (*Value, error) {
	switch p.peek() {
	case '{':
		return p.parseBlock()

	case '[':
		return p.parseArray()

	default:
		return p.parseExpression(false)
	}
}

// parseBlock parses: '{' (Statement (Sep Statement)* Sep?)? '}'.
func (p *parser) parseBlock() (*Value, error) {
	pos := p.position()

	if !p.expect('{') {
		return nil, p.errorf("'{'")
	}

	body := make([]*Statement, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, p.errorf("'}'")
		}

		if p.expect('}') {
			break
		}

		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, st)

		if err := p.parseSeparator(); err != nil {
			return nil, err
		}
	}

	return &Value{Kind: KindBlock, Body: body, Pos: pos}, nil
}

// parseArray parses: '[' (Element (',' Element)* ','?)? ']'.
func (p *parser) parseArray() (*Value, error) {
	pos := p.position()

	if !p.expect('[') {
		return nil, p.errorf("'['")
	}

	elems := make([]*Value, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, p.errorf("']'")
		}

		if p.expect(']') {
			break
		}

		var (
			elem *Value
			err  error
		)

		if p.peek() == '{' {
			elem, err = p.parseBlock()
		} else {
			elem, err = p.parseExpression(false)
		}

		if err != nil {
			return nil, err
		}

		elems = append(elems, elem)

		p.skipWhitespaceAndComments()

		switch {
		case p.expect(','):
		case p.peek() == ']':
		default:
			return nil, p.errorf("',' or ']'")
		}
	}

	return &Value{Kind: KindArray, Elements: elems, Pos: pos}, nil
}

// parseExpression captures expression text. If brace is true the expression
// also ends at a top-level '{', which begins the block of a conditional.
func (p *parser) parseExpression(brace bool) (*Value, error) {
	pos := p.position()

	source, err := p.captureExpression(brace)
	if err != nil {
		return nil, err
	}

	if source == "" {
		p.pos, p.line, p.col = pos.Offset, pos.Line, pos.Column

		return nil, p.errorf("expression")
	}

	return &Value{Kind: KindExpr, Source: source, Pos: pos}, nil
}

// captureExpression captures raw expression text.
// Tracks balanced '()', '[]', '{}' and skips string literals so delimiters
// inside them don't terminate. At nesting depth zero the expression stops at
// an unbalanced closer, ',', ';', a line break, or a comment.
func (p *parser) captureExpression(brace bool) (string, error) {
	start := p.pos
	end := p.pos
	depth := 0

loop:
	for !p.eof() {
		ch := p.peek()

		if ch == '"' || ch == '\'' || ch == '`' {
			if err := p.skipString(ch); err != nil {
				return "", err
			}

			end = p.pos

			continue
		}

		if depth == 0 && p.atComment() {
			break
		}

		switch ch {
		case '{':
			if brace && depth == 0 {
				break loop
			}

			depth++

		case '(', '[':
			depth++

		case ')', ']', '}':
			if depth == 0 {
				break loop
			}

			depth--

		case ',', ';', '\n':
			if depth == 0 {
				break loop
			}
		}

		p.advance()

		if !unicode.IsSpace(ch) {
			end = p.pos
		}
	}

	if depth > 0 {
		return "", p.errorf("closing bracket")
	}

	return string(p.input[start:end]), nil
}

// parseIdentifier parses an identifier. Names may contain internal '-',
// '+', '@', or '/' when followed by an identifier character.
func (p *parser) parseIdentifier() string {
	start := p.pos

	p.advance()

	for !p.eof() {
		ch := p.peek()

		if isIdentifierContinue(ch) {
			p.advance()

			continue
		}

		if (ch == '-' || ch == '+' || ch == '@' || ch == '/') &&
			p.pos+1 < len(p.input) &&
			isIdentifierContinue(rune(p.input[p.pos+1])) {
			p.advance()

			continue
		}

		break
	}

	return string(p.input[start:p.pos])
}

// atAssign reports whether the next non-blank character is an assignment
// operator, without consuming input.
func (p *parser) atAssign() bool {
	saved := *p
	defer func() { *p = saved }()

	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance()
	}

	return p.peek() == ':' || (p.peek() == '=' && p.peekN(2) != "==")
}

// atKeyword reports whether the input at the current position is the word
// kw, not followed by an identifier character.
func (p *parser) atKeyword(kw string) bool {
	if p.peekN(len(kw)) != kw {
		return false
	}

	next := p.pos + len(kw)
	if next >= len(p.input) {
		return true
	}

	r, _ := utf8.DecodeRune(p.input[next:])

	return !isIdentifierContinue(r)
}

func (p *parser) atComment() bool {
	switch p.peek() {
	case '#':
		return true

	case '/':
		s := p.peekN(2)

		return s == "//" || s == "/*"

	default:
		return false
	}
}

func (p *parser) errorf(expected string) error {
	found := ""
	if !p.eof() {
		found = string(p.peek())
	}

	return &ParseError{
		Pos:      p.position(),
		Expected: expected,
		Found:    found,
		Source:   string(p.input),
	}
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// skipWhitespaceAndComments skips blanks and comments and reports whether a
// line break was crossed.
func (p *parser) skipWhitespaceAndComments() bool {
	line := p.line

	for !p.eof() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.advance()

		case p.peek() == '#' || p.peekN(2) == "//":
			p.skipLineComment()

		case p.peekN(2) == "/*":
			p.skipBlockComment()

		default:
			return p.line > line
		}
	}

	return p.line > line
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

func (p *parser) skipBlockComment() {
	p.advance() // skip '/'
	p.advance() // skip '*'

	for !p.eof() {
		if p.peekN(2) == "*/" {
			p.advance()
			p.advance()

			return
		}

		p.advance()
	}
}

func (p *parser) skipString(quote rune) error {
	pos := p.position()

	p.advance() // skip opening quote

	for !p.eof() {
		ch := p.peek()
		if ch == '\\' && quote != '`' {
			p.advance()
			p.advance()

			continue
		}

		p.advance()

		if ch == quote {
			return nil
		}
	}

	err := &ParseError{
		Pos:      pos,
		Expected: "closing " + strconv.QuoteRune(quote),
		Source:   string(p.input),
	}

	return err
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}
