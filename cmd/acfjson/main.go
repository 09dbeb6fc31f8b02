// Command acfjson inspects and normalises ACF field group JSON files.
//
//	acfjson inventory acf-json/group_funnel.json
//	acfjson check --layouts acf-json
//	acfjson scan acf-json
//	acfjson fix --mode exhaustive acf-json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil {
				fmt.Fprintf(os.Stderr, "acfjson: %v\n", exit.err)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "acfjson: %v\n", err)
		os.Exit(1)
	}
}
