// Command quill runs prompt-chaining demo flows against a hosted model.
//
// Usage:
//
//	GEMINI_API_KEY=...    quill [flags] <command> [command flags] [args]
//	OPENAI_API_KEY=...    quill -provider openai trip -destination Rome
//	ANTHROPIC_API_KEY=... quill -provider anthropic quiz
//
// Flags:
//
//	-provider string   Provider: gemini, openai, anthropic (gemini by default, else auto-detected from env vars)
//	-model string      Model ID (default: provider default)
//	-api-key string    API key (overrides provider's env var)
//	-max-tokens int    Output token cap (default 1024)
//
// A .env file in the working directory is loaded before env vars are read.
// QUILL_LOG_LEVEL (debug, info, warn, error) and QUILL_LOG_FORMAT (text,
// json) control diagnostics written to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/html"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	fset := flag.NewFlagSet("quill", flag.ContinueOnError)
	var (
		providerFlag = fset.String("provider", "", "Provider: gemini, openai, anthropic (auto-detected from env vars if omitted)")
		model        = fset.String("model", "", "Model ID (provider-specific)")
		apiKey       = fset.String("api-key", "", "API key (overrides provider's env var)")
		maxTokens    = fset.Int("max-tokens", quill.DefaultMaxTokens, "Output token cap")
	)
	fset.Usage = func() { usage(fset) }
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fset.NArg() == 0 {
		usage(fset)
		return errors.New("no command given")
	}
	cmd, ok := lookup(fset.Arg(0))
	if !ok {
		return fmt.Errorf("unknown command %q", fset.Arg(0))
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := newLogger(os.Stderr, os.Getenv("QUILL_LOG_LEVEL"), os.Getenv("QUILL_LOG_FORMAT"), uuid.NewString())
	if err != nil {
		return err
	}

	a := newApp(os.Stdout, logger)
	if !cmd.offline {
		// Env vars are read here and passed as values.
		cfg, err := resolveConfig(*providerFlag, *apiKey, envKeys{
			gemini:       os.Getenv("GEMINI_API_KEY"),
			legacyGemini: os.Getenv("gemini_api_key"),
			openai:       os.Getenv("OPENAI_API_KEY"),
			anthropic:    os.Getenv("ANTHROPIC_API_KEY"),
		})
		if err != nil {
			return err
		}
		p, err := newProvider(ctx, cfg)
		if err != nil {
			return err
		}
		logger.Debug("provider resolved", "provider", cfg.name, "model", *model)
		a.provider = p
		a.loader = html.NewLoader()
		a.opts = []quill.CallOption{
			quill.WithModel(*model),
			quill.WithMaxTokens(*maxTokens),
			quill.WithLogger(logger),
		}
	}

	if err := cmd.run(ctx, a, fset.Args()[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	return nil
}

func usage(fset *flag.FlagSet) {
	w := fset.Output()
	fmt.Fprintln(w, "Usage: quill [flags] <command> [command flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fset.PrintDefaults()
}

// joinArgs joins positional args into one string, falling back to def.
func joinArgs(args []string, def string) string {
	s := strings.TrimSpace(strings.Join(args, " "))
	if s == "" {
		return def
	}
	return s
}

// readInput returns args joined, or all of r when args are empty or "-".
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return joinArgs(args, ""), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
