// Package main provides the SharePoint list provisioner CLI.
// Usage: provision
//        provision check
//        provision history [--limit N]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx := context.Background()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "", "run":
		err = runProvision(ctx, os.Stdout)
	case "check":
		err = runCheck(os.Stdout, crmRegistry())
	case "history":
		err = runHistory(ctx, os.Stdout, os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`SalesTrack SharePoint list provisioner

Usage:
  provision [command] [options]

Commands:
  (none), run   Create missing lists and columns on the configured site
  check         Verify lookup ordering of the declared lists (offline)
  history       Show recent provisioning runs from the journal
  help          Show this help

Environment Variables:
  SP_SITE_URL            SharePoint site URL (required for run)
  AZURE_TENANT_ID        Entra ID tenant of the az login session
  GRAPH_BASE_URL         Graph endpoint (default https://graph.microsoft.com/v1.0)
  GRAPH_TIMEOUT          Per-request timeout (default 30s)
  JOURNAL_DATABASE_URL   PostgreSQL DSN of the run journal (optional)
  LOG_LEVEL, APP_ENV     Logging

Sign in with 'az login' before running; the provisioner never prompts.

Examples:
  provision
  provision check
  provision history --limit 5`)
}
