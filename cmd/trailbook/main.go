// ABOUTME: Entry point for the trailbook CLI
// ABOUTME: Executes the root command and maps failures to a non-zero exit

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
