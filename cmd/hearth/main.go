// Command hearth runs the Hearth server and talks to it from the shell.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}
