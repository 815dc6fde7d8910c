// Command dwellings summarizes, charts and exports the quarterly
// dwellings-commenced series.
package main

import "dwellcli/internal/cli"

func main() {
	cli.Execute()
}
