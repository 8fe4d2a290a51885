// Command wizard is a terminal HTML editor with live markup coloring.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
