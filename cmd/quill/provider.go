package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/anthropic"
	"github.com/fwojciec/quill/gemini"
	"github.com/fwojciec/quill/openai"
)

// envKeys holds the API key env var values. Env is only read in run().
type envKeys struct {
	gemini       string // GEMINI_API_KEY
	legacyGemini string // gemini_api_key
	openai       string // OPENAI_API_KEY
	anthropic    string // ANTHROPIC_API_KEY
}

// config is the resolved provider selection.
type config struct {
	name string
	key  string
}

// resolveConfig selects the provider and its key. Gemini is the default
// whenever a Gemini key is available; otherwise the provider is detected
// from the single key that is set. An explicit -api-key overrides env vars.
func resolveConfig(providerFlag, apiKeyFlag string, env envKeys) (config, error) {
	geminiKey := env.gemini
	if geminiKey == "" {
		geminiKey = env.legacyGemini
	}

	provider := providerFlag
	if provider == "" {
		switch {
		case geminiKey != "" || apiKeyFlag != "":
			provider = "gemini"
		case env.openai != "" && env.anthropic != "":
			return config{}, fmt.Errorf("multiple API keys found (OPENAI_API_KEY, ANTHROPIC_API_KEY): use -provider flag to select")
		case env.openai != "":
			provider = "openai"
		case env.anthropic != "":
			provider = "anthropic"
		default:
			return config{}, fmt.Errorf("no API key found: set GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY (or use -api-key flag): %w", quill.ErrNoCredential)
		}
	}

	key := apiKeyFlag
	var envName string
	switch provider {
	case "gemini":
		envName = "GEMINI_API_KEY"
		if key == "" {
			key = geminiKey
		}
	case "openai":
		envName = "OPENAI_API_KEY"
		if key == "" {
			key = env.openai
		}
	case "anthropic":
		envName = "ANTHROPIC_API_KEY"
		if key == "" {
			key = env.anthropic
		}
	default:
		return config{}, fmt.Errorf("unknown provider %q: must be \"gemini\", \"openai\" or \"anthropic\"", provider)
	}
	if key == "" {
		return config{}, fmt.Errorf("%s not set (use -api-key flag or environment variable): %w", envName, quill.ErrNoCredential)
	}
	return config{name: provider, key: key}, nil
}

// newProvider constructs the client for a resolved config.
func newProvider(ctx context.Context, cfg config) (quill.Provider, error) {
	switch cfg.name {
	case "gemini":
		client, err := gemini.New(ctx, cfg.key)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		client, err := openai.New(cfg.key)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "anthropic":
		client, err := anthropic.New(cfg.key)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.name)
	}
}
