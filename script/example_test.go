package script_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/nestkit/script"
)

func ExampleBuild() {
	m, err := script.Build(context.Background(), `
price: 10
client: {
  first_name: "Patrick"
  last_name = "Stewart"
  full_name: local_dig("first_name") + " " + local_dig("last_name")
}
features: [{ name: "dynamic" }, { name: "object_oriented" }]
if dig("price") == 15 { inexistent: "i won't be there" }
`)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(m)
	// Output:
	// {price: 10, client: {first_name: "Patrick", last_name: "Stewart", full_name: "Patrick Stewart"}, features: [{name: "dynamic"}, {name: "object_oriented"}]}
}

func ExampleFormat() {
	m, _ := script.Build(context.Background(),
		`typing: "dynamic"; tags: ["a", "b"]`, script.WithSymbolize(false))

	_ = script.Format(os.Stdout, m, 2)
	// Output:
	// typing: "dynamic"
	// tags: [
	//   "a",
	//   "b"
	// ]
}
