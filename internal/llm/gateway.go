package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/rahulverma/legalclarity/internal/config"
)

// Gateway routes chat requests to a configured provider. There is no retry
// and no fallback: a single upstream failure is returned to the caller.
type Gateway interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Provider(name string) (Provider, error)
	ListModels() []ModelInfo
}

// ModelInfo describes an available model.
type ModelInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type gateway struct {
	providers       map[string]Provider
	defaultProvider string
}

// Provider clients hold HTTP connection pools, so they are created once per
// (provider, key) pair and reused across gateways.
var (
	clientMu    sync.Mutex
	clientCache = map[string]Provider{}
)

func cachedProvider(name, apiKey string, build func() Provider) Provider {
	clientMu.Lock()
	defer clientMu.Unlock()

	key := name + ":" + apiKey
	if p, ok := clientCache[key]; ok {
		return p
	}
	p := build()
	clientCache[key] = p
	return p
}

func NewGateway(cfg config.LLMConfig) Gateway {
	g := &gateway{
		providers:       make(map[string]Provider),
		defaultProvider: cfg.DefaultProvider,
	}

	if cfg.OpenAIKey != "" {
		g.providers["openai"] = cachedProvider("openai", cfg.OpenAIKey, func() Provider {
			return NewOpenAIProvider(cfg.OpenAIKey)
		})
	}
	if cfg.AnthropicKey != "" {
		g.providers["anthropic"] = cachedProvider("anthropic", cfg.AnthropicKey, func() Provider {
			return NewAnthropicProvider(cfg.AnthropicKey)
		})
	}

	return g
}

func (g *gateway) Provider(name string) (Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *gateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = g.defaultProvider
	}

	p, err := g.Provider(providerName)
	if err != nil {
		return nil, err
	}

	return p.ChatCompletion(ctx, req)
}

func (g *gateway) ListModels() []ModelInfo {
	var models []ModelInfo
	for _, p := range g.providers {
		for _, m := range p.Models() {
			models = append(models, ModelInfo{Provider: p.Name(), Model: m})
		}
	}
	return models
}
