package script

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/nest"
)

// Eval builds a structure by running every statement of ast against a
// fresh [nest.Proxy].
//
// Each assignment is dispatched by name through [nest.Proxy.Call], so names
// ending in '?' or '!' invoke the proxy's own operations and unknown ones
// fail with [nest.ErrUnknownOperation]. Errors from the proxy are returned
// unmodified.
func (ast *AST) Eval(ctx context.Context, opts ...Option) (*nest.Map, error) {
	o := makeOptions(opts...)

	e := &evaluator{
		ctx:        ctx,
		processEnv: processEnvMap(o.processEnv),
		logger:     o.logger,
	}
	e.env = newEnv(e)

	o.logger.TraceContext(ctx, "eval start",
		slog.Int("statement_count", len(ast.Statements)),
		slog.Bool("symbolize", o.symbolize),
	)

	return nest.Build(func(p *nest.Proxy) error {
		e.proxy = p

		return e.statements(ast.Statements)
	}, o.buildOptions()...)
}

// Build parses src and evaluates it.
func Build(ctx context.Context, src string, opts ...Option) (*nest.Map, error) {
	ast, err := Parse(ctx, src, opts...)
	if err != nil {
		return nil, err
	}

	return ast.Eval(ctx, opts...)
}

// evaluator holds the state of one evaluation.
type evaluator struct {
	ctx        context.Context //nolint:containedctx
	proxy      *nest.Proxy     // the proxy receiving writes
	env        map[string]any
	processEnv map[string]string
	logger     log.Logger
}

func (e *evaluator) statements(stmts []*Statement) error {
	for _, st := range stmts {
		if err := e.ctx.Err(); err != nil {
			return err
		}

		if err := e.statement(st); err != nil {
			return err
		}
	}

	return nil
}

func (e *evaluator) statement(st *Statement) error {
	switch st.Kind {
	case StmtIf:
		return e.condition(st)

	case StmtAssign:
		return e.assign(st)

	default:
		return nil
	}
}

// assign dispatches an assignment through the proxy.
func (e *evaluator) assign(st *Statement) error {
	name := st.Name
	if st.Setter {
		name += "="
	}

	var err error

	switch st.Value.Kind {
	case KindBlock:
		_, err = e.proxy.Call(name, func() error {
			return e.statements(st.Value.Body)
		})

	case KindArray:
		_, err = e.proxy.Call(nest.OpAry, name, func(s *nest.Seq) error {
			return e.array(s, st.Value.Elements)
		})

	case KindExpr:
		var v any

		if v, err = e.expr(st.Value); err == nil {
			_, err = e.proxy.Call(name, v)
		}
	}

	return err
}

// array pushes the value of each element onto s. Block elements are built as
// detached entries whose expressions see only the entry under construction.
func (e *evaluator) array(s *nest.Seq, elems []*Value) error {
	for _, el := range elems {
		if el.Kind != KindBlock {
			v, err := e.expr(el)
			if err != nil {
				return err
			}

			s.Push(v)

			continue
		}

		entry, err := e.proxy.Call(nest.OpEntry, func(p *nest.Proxy) error {
			outer := e.proxy
			e.proxy = p

			defer func() { e.proxy = outer }()

			return e.statements(el.Body)
		})
		if err != nil {
			return err
		}

		s.Push(entry)
	}

	return nil
}

// condition applies the matching branch in the current scope.
func (e *evaluator) condition(st *Statement) error {
	v, err := e.expr(st.Cond)
	if err != nil {
		return err
	}

	ok, isBool := v.(bool)
	if !isBool {
		return ErrExprEvaluate.With(
			slog.String("source", st.Cond.Source),
			slog.String("position", st.Cond.Pos.String()),
			slog.String("issue", "condition is not a bool"),
			slog.String("type", typeName(v)),
		)
	}

	e.logger.TraceContext(e.ctx, "condition",
		slog.String("source", st.Cond.Source),
		slog.Bool("result", ok),
	)

	switch {
	case ok:
		return e.statements(st.Then.Body)

	case st.Else != nil:
		return e.statements(st.Else.Body)

	default:
		return nil
	}
}

// expr compiles v once and runs it against the live environment.
func (e *evaluator) expr(v *Value) (any, error) {
	program, err := v.compile()
	if err != nil {
		return nil, err
	}

	result, err := vm.Run(program, e.env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).With(
			slog.String("source", v.Source),
			slog.String("position", v.Pos.String()),
		)
	}

	return result, nil
}

// compile compiles the expression on first use. Programs are shared by
// every evaluation of the AST.
func (v *Value) compile() (*vm.Program, error) {
	v.compileOnce.Do(func() {
		program, err := expr.Compile(v.Source, expr.Env(envShape()))
		if err != nil {
			v.compileErr = ErrExprCompile.Wrap(err).With(
				slog.String("source", v.Source),
				slog.String("position", v.Pos.String()),
			)

			return
		}

		v.program = program
	})

	return v.program, v.compileErr
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
