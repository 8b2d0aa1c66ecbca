package nest_test

import (
	"fmt"

	"github.com/ardnew/nestkit/nest"
)

func ExampleBuild() {
	m, err := nest.Build(func(p *nest.Proxy) error {
		p.Set("price", 10)

		return p.Hash("client", func() error {
			p.Set("first_name", "Patrick")
			p.Set("last_name", "Stewart")

			first, _ := p.LocalDig("first_name")
			last, _ := p.LocalDig("last_name")
			p.Set("full_name", fmt.Sprint(first, " ", last))

			return nil
		})
	})
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(m)
	// Output:
	// {price: 10, client: {first_name: "Patrick", last_name: "Stewart", full_name: "Patrick Stewart"}}
}

func ExampleProxy_Array() {
	m, _ := nest.Build(func(p *nest.Proxy) error {
		return p.Array("features", func(s *nest.Seq) error {
			for _, name := range []string{"dynamic", "object_oriented"} {
				e, err := p.Entry(func(e *nest.Proxy) error {
					e.Set("name", name)

					return nil
				})
				if err != nil {
					return err
				}

				s.Push(e)
			}

			return nil
		})
	})

	fmt.Println(m)
	// Output:
	// {features: [{name: "dynamic"}, {name: "object_oriented"}]}
}

func ExampleProxy_Call() {
	m, _ := nest.Build(func(p *nest.Proxy) error {
		if _, err := p.Call("features", func() error {
			_, err := p.Call("typing=", "dynamic")

			return err
		}); err != nil {
			return err
		}

		typed, _ := p.Call("key?", "features", "typing")
		_, err := p.Call("typed", typed)

		return err
	}, nest.WithSymbolize(false))

	fmt.Println(m)
	// Output:
	// {"features": {"typing": "dynamic"}, "typed": true}
}

func ExampleWithBase() {
	base := nest.NewMap().
		Set(nest.Sym("host"), "localhost").
		Set(nest.Sym("port"), 80)

	m, _ := nest.Build(func(p *nest.Proxy) error {
		p.Set("port", 8080)

		return nil
	}, nest.WithBase(base))

	fmt.Println(m)
	fmt.Println(base)
	// Output:
	// {host: "localhost", port: 8080}
	// {host: "localhost", port: 80}
}
