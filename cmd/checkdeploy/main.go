// Command checkdeploy compares the previously deployed site with a freshly
// built output directory and fails when a subscribed feed would disappear.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/deploycheck"
)

func main() {
	outputDir := flag.String("out", "dist", "freshly built output directory")
	allowlist := flag.String("allowlist", deploycheck.AllowlistFilename, "file listing approved feed removals")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <deployed-site-base-url>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	deployedURL := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	checker := deploycheck.New(30*time.Second, logger)
	if err := checker.Check(ctx, deployedURL, *outputDir, *allowlist); err != nil {
		if errors.Is(err, deploycheck.ErrBreakingChange) {
			logger.Error("deploy check failed", "error", err)
		} else {
			logger.Error("deploy check could not complete", "error", err)
		}
		os.Exit(1)
	}
}
