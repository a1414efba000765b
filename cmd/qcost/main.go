// Command qcost estimates the fault-tolerant hardware resources
// required to run quantum algorithms across several application
// domains.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
