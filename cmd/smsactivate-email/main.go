// Command smsactivate-email buys, polls, reactivates and cancels
// SMS-Activate email activations from the shell.
//
// Usage:
//
//	smsactivate-email domains <site>
//	smsactivate-email buy <site> <domain> [zones|popular] > activation.json
//	smsactivate-email wait [-attempts N] [-period D] [-strict] < activation.json
//	smsactivate-email reactivate < activation.json > activation.json.new
//	smsactivate-email cancel < activation.json
//	smsactivate-email history [-page N] [-per-page N] [-search EMAIL] [-sort asc|desc]
//
// Configuration comes from SMSACTIVATE_* environment variables or a .env
// file; SMSACTIVATE_API_KEY is required.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args, DefaultConfig()); err != nil {
		stop()
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
