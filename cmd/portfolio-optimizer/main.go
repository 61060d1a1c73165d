// Package main provides the portfolio-optimizer command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		if a.logger != nil {
			a.logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
