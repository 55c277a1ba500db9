package di

import (
	"fmt"
	"net/http"

	"shopping-agent/internal/adapter/httpapi"
	"shopping-agent/internal/adapter/tool"
	"shopping-agent/internal/application/port/input"
	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/application/service"
	"shopping-agent/internal/infrastructure/browser/rod"
	"shopping-agent/internal/infrastructure/llm/openrouter"
	"shopping-agent/internal/infrastructure/logger"
	"shopping-agent/internal/infrastructure/prompts"
	"shopping-agent/internal/infrastructure/render"
	"shopping-agent/internal/infrastructure/search/serpapi"
	"shopping-agent/internal/usecase/executor"
)

type Container struct {
	Browser  output.BrowserPort
	LLM      output.LLMPort
	Logger   output.LoggerPort
	Searcher input.TaskExecutor
	Executor input.TaskExecutor
	Handler  http.Handler
}

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	SerpAPIKey       string
	BrowserHeadless  bool
	LogLevel         string
}

// NewContainer wires the full graph. The browser session is created here
// but no browser process launches until the first navigation.
func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	sessionCfg := rod.DefaultSessionConfig()
	sessionCfg.Headless = cfg.BrowserHeadless
	browser := rod.NewSession(sessionCfg, log)

	resolver := rod.NewResolver(rod.DefaultResolverConfig(), log)

	search := serpapi.NewClient(serpapi.DefaultConfig(cfg.SerpAPIKey), log)
	renderer := render.NewCardRenderer()

	llm := openrouter.NewAdapter(openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel))

	searcherTools := service.NewToolRegistry()
	searcherTools.Register(tool.NewVisualSearchTool(search, renderer, log))

	actionTools := service.NewToolRegistry()
	actionTools.Register(tool.NewNavigateTool(browser, resolver, log))
	actionTools.Register(tool.NewAddToCartTool(browser, log))

	searcher := executor.New(llm, searcherTools, log, prompts.SearcherPrompt)
	buyer := executor.New(llm, actionTools, log, prompts.ExecutorPrompt)

	server := httpapi.NewServer(searcher, buyer, browser, log)

	return &Container{
		Browser:  browser,
		LLM:      llm,
		Logger:   log,
		Searcher: searcher,
		Executor: buyer,
		Handler:  server.Router(),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
