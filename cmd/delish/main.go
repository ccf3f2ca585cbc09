// Command delish cleans the Delish Express delivery dataset and prints the
// dashboard aggregations from the terminal.
//
// Configuration comes from the same environment variables as the server;
// flags override them for a single run.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	_ "github.com/gabrielpastega/delish-express-data-visualization/internal/core/tables" // Register all tables
)

func main() {
	// A missing .env file is normal for the CLI
	_ = godotenv.Overload()

	if err := newRootCmd().Execute(); err != nil {
		msg := core.MapError(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if core.IsUserFacing(err) {
			fmt.Fprintf(os.Stderr, "%s (%s)\n", msg.Action, msg.Code)
		}
		os.Exit(1)
	}
}
