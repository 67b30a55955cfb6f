// Command bunnymark runs the rendering benchmark scenes in a window or
// headless.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
