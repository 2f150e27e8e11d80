// Command snowflake issues and inspects snowflake ids. It exists for manual
// inspection; services embed the snowflakeid package directly.
package main

import (
	"os"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	a := &app{opts: optionsFromEnv()}
	defer a.close()
	return a.rootCmd().Execute()
}
