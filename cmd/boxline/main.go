// boxline is a terminal editor for diagrams of labeled boxes joined by
// lines.
//
// Run: go run ./cmd/boxline edit
package main

import "github.com/wesen/boxline/internal/cli"

func main() {
	cli.Execute()
}
