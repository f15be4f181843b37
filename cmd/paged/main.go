// Command paged paginates a laid-out HTML box tree and paints every page
// into a zip archive of page images.
//
// Usage:
//
//	paged render tree.json -o pages.zip --format letter --pagination
//	paged inspect tree.json
//
// Settings can also come from ./paged.yaml (or --config) and PAGED_*
// environment variables such as PAGED_FORMAT or PAGED_FOOTER_CONTENT.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, _ := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
