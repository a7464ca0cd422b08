package generators

import (
	"fmt"
	"os"
	"strings"

	"github.com/reusee/mailx/cmds"
	"github.com/reusee/mailx/configs"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/vars"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderDeepseek   = "deepseek"
	ProviderOllama     = "ollama"
)

var defaultModels = map[string]string{
	ProviderGemini:     "gemini-2.0-flash-lite",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-lite-001",
	ProviderDeepseek:   "deepseek-chat",
	ProviderOllama:     "llama3.2",
}

var (
	providerFlag = cmds.Var[string]("-provider")
	modelFlag    = cmds.Var[string]("-model")
)

type ProviderName string

func (Module) ProviderName(
	loader configs.Loader,
) ProviderName {
	name := vars.FirstNonZero(
		*providerFlag,
		configs.First[string](loader, "provider"),
		os.Getenv("LLM_PROVIDER"),
		ProviderGemini,
	)
	return ProviderName(normalizeProvider(name))
}

func normalizeProvider(name string) string {
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case "google", "gemini":
		return ProviderGemini
	case "openai", "open-ai", "open_ai":
		return ProviderOpenAI
	case "openrouter", "open-router", "open_router":
		return ProviderOpenRouter
	}
	return name
}

type ModelName string

func (Module) ModelName(
	loader configs.Loader,
	provider ProviderName,
) ModelName {
	return vars.FirstNonZero(
		ModelName(*modelFlag),
		configs.First[ModelName](loader, "model"),
		ModelName(os.Getenv("LLM_MODEL")),
		ModelName(os.Getenv("OPENAI_MODEL")),
		ModelName(defaultModels[string(provider)]),
	)
}

type BaseURL string

func (Module) BaseURL(
	loader configs.Loader,
) BaseURL {
	return vars.FirstNonZero(
		configs.First[BaseURL](loader, "base_url"),
		BaseURL(os.Getenv("OPENAI_BASE_URL")),
	)
}

type GetGenerator func(provider string, model string) (Generator, error)

func (Module) GetGenerator(
	newOpenAI NewOpenAI,
	newGemini NewGemini,
	baseURL BaseURL,
	googleKey GoogleAPIKey,
	openAIKey OpenAIAPIKey,
	openRouterKey OpenRouterAPIKey,
	deepseekKey DeepseekAPIKey,
) GetGenerator {
	return func(provider string, model string) (Generator, error) {
		provider = normalizeProvider(provider)
		if model == "" {
			model = defaultModels[provider]
		}
		args := GeneratorArgs{
			Provider: provider,
			Model:    model,
		}

		switch provider {

		case ProviderGemini:
			args.APIKey = string(googleKey)
			return newGemini(args), nil

		case ProviderOpenAI:
			args.BaseURL = vars.FirstNonZero(string(baseURL), "https://api.openai.com/v1")
			args.APIKey = string(openAIKey)
			return newOpenAI(args), nil

		case ProviderOpenRouter:
			args.BaseURL = "https://openrouter.ai/api/v1"
			args.APIKey = string(openRouterKey)
			return newOpenAI(args), nil

		case ProviderDeepseek:
			args.BaseURL = "https://api.deepseek.com"
			args.APIKey = string(deepseekKey)
			return newOpenAI(args), nil

		case ProviderOllama:
			args.BaseURL = vars.FirstNonZero(string(baseURL), "http://127.0.0.1:11434/v1")
			return newOpenAI(args), nil

		}

		return nil, fmt.Errorf("unknown provider: %q", provider)
	}
}

type GetDefaultGenerator func() (Generator, error)

func (Module) GetDefaultGenerator(
	provider ProviderName,
	model ModelName,
	get GetGenerator,
	logger logs.Logger,
) GetDefaultGenerator {
	return func() (Generator, error) {
		logger.Info("default generator",
			"provider", provider,
			"model", model,
		)
		return get(string(provider), string(model))
	}
}
