// Command dailyfeed collects the day's feed entries and AI News issue,
// summarizes them and delivers the digest.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
