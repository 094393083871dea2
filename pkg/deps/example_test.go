package deps_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gitdeps/pkg/deps"
)

func ExampleParseRecord() {
	rec := deps.ParseRecord("https://github.com/org/math.git v2.1")

	fmt.Println("URL:", rec.URL)
	fmt.Println("Ref:", rec.Ref)
	// Output:
	// URL: https://github.com/org/math.git
	// Ref: v2.1
}

func ExampleLibraryName() {
	fmt.Println(deps.LibraryName(deps.Record{URL: "https://example.com/org/repo.git", Ref: "main"}))
	fmt.Println(deps.LibraryName(deps.Record{URL: "https://example.com/org/repo#readme?x=1", Ref: "v1"}))
	// Output:
	// repo.git-main
	// repo-v1
}

func ExampleRead() {
	file := `#DEPENDENCIES
https://github.com/org/math.git main
https://github.com/org/render.git v2.1   "pinned for the new API"
`
	records, err := deps.Read(strings.NewReader(file), false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, rec := range records {
		fmt.Printf("%s [%s]\n", rec.URL, rec.Ref)
	}
	// Output:
	// https://github.com/org/math.git [main]
	// https://github.com/org/render.git [v2.1]
}
