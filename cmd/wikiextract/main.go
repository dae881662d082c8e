// Command wikiextract extracts page redirects, metadata and text from
// MediaWiki XML dumps, read from a local file or a dump mirror.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/golang/glog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
