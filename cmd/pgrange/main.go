// Command pgrange decodes PostgreSQL range values, applies range operators and renders range SQL.
package main

import (
	"os"

	"github.com/rangekit/pgrange/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
