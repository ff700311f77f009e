package hoister_test

import (
	"fmt"
	"log"
	"sort"

	"github.com/erraggy/oasnorm/hoister"
	"go.yaml.in/yaml/v4"
)

// Example demonstrates basic usage of the hoister package.
func Example() {
	spec := `
paths:
  /users:
    get:
      responses:
        "200":
          description: 成功回應
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: string
`
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(spec), &doc); err != nil {
		log.Fatal(err)
	}

	result, err := hoister.HoistWithOptions(
		hoister.WithDocument(doc),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Hoisted %d schema(s)\n", result.HoistCount)

	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}

	// Output:
	// Hoisted 1 schema(s)
	//   UsersGetResponses200ContentApplicationJsonSchema
}
