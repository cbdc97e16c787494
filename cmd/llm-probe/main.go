package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/probelabs/llm-probe/config"
	"github.com/probelabs/llm-probe/internal/observability"
	"github.com/probelabs/llm-probe/services/selector"
)

// llm-probe runs one provider selection and prints the normalized result
// as JSON to stdout.
func main() {
	provider := flag.String("provider", "", "force a specific provider (overrides LLM_PROVIDER)")
	flag.Parse()

	if err := run(*provider); err != nil {
		fmt.Fprintf(os.Stderr, "llm-probe: %v\n", err)
		os.Exit(1)
	}
}

func run(forced string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sel := selector.New(cfg.Selector(), logger)

	ctx := context.Background()
	var result interface{}
	if forced != "" {
		result, err = sel.HelloWithDirective(ctx, forced)
	} else {
		result, err = sel.Hello(ctx)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
