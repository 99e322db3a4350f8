package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/threeside.go/cli"
	"github.com/sokinpui/threeside.go/internal/tui"
	"github.com/sokinpui/threeside.go/threeside"
)

func main() {
	cfg, err := cli.ParseFlags()
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	app, err := threeside.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Flags that print to stdout and should not run the TUI.
	if cfg.Print || cfg.Partial != "" {
		if err := app.Execute(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			var detailed *threeside.DetailedError
			if errors.As(err, &detailed) {
				fmt.Fprintf(os.Stderr, "%s\n", detailed.Stack)
			}
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(app, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
