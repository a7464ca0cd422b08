package generators

import (
	"os"

	"github.com/reusee/mailx/configs"
	"github.com/reusee/mailx/vars"
)

type (
	GoogleAPIKey     string
	OpenAIAPIKey     string
	OpenRouterAPIKey string
	DeepseekAPIKey   string
)

func (Module) GoogleAPIKey(
	loader configs.Loader,
) GoogleAPIKey {
	return vars.FirstNonZero(
		configs.First[GoogleAPIKey](loader, "api_key"),
		GoogleAPIKey(os.Getenv("GEMINI_API_KEY")),
		GoogleAPIKey(os.Getenv("GOOGLE_API_KEY")),
	)
}

func (Module) OpenAIAPIKey(
	loader configs.Loader,
) OpenAIAPIKey {
	return vars.FirstNonZero(
		configs.First[OpenAIAPIKey](loader, "api_key"),
		OpenAIAPIKey(os.Getenv("OPENAI_API_KEY")),
	)
}

func (Module) OpenRouterAPIKey(
	loader configs.Loader,
) OpenRouterAPIKey {
	return vars.FirstNonZero(
		configs.First[OpenRouterAPIKey](loader, "api_key"),
		OpenRouterAPIKey(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterAPIKey(os.Getenv("OPEN_ROUTER_API_KEY")),
	)
}

func (Module) DeepseekAPIKey(
	loader configs.Loader,
) DeepseekAPIKey {
	return vars.FirstNonZero(
		configs.First[DeepseekAPIKey](loader, "api_key"),
		DeepseekAPIKey(os.Getenv("DEEPSEEK_API_KEY")),
	)
}
