// Package llm is a provider-agnostic text-generation gateway. Callers build
// one vendor-neutral Prompt, and the package dispatches it to one of several
// LLM backends, each with its own wire format, normalizing the response into
// a common LLMResult.
//
// # Architecture
//
//   - Prompt / LLMResult: the vendor-neutral request and response model
//   - Adapter: one implementation per vendor family (Anthropic, the
//     OpenAI-compatible family of OpenAI/Groq/Cerebras, Gemini, and a stub
//     Hugging Face backend), each owning its request lowering and response
//     parsing
//   - Factory: resolves a provider key to a cached adapter instance
//   - Gateway: routes a call to the right adapter through middleware
//
// # Quick Start
//
//	cfg, _ := config.Read("config.json")
//	factory := llm.NewFactory(cfg)
//	gw := llm.NewGateway(factory, llm.WithMiddleware(llm.LoggingMiddleware(slog.Default())))
//
//	result, err := gw.Generate(ctx, "openai",
//	    llm.ModelConfig{Model: "gpt-4o-mini"},
//	    llm.SimplePrompt("You are a helpful assistant.", "Say hello."))
//	fmt.Println(result.Message)
//
// Adapters can also be used directly through the Factory:
//
//	adapter, _ := factory.Instance("anthropic", llm.ModelConfig{Model: "claude-3-5-sonnet-20240620"})
//	result, err := adapter.Generate(ctx, llm.SimplePrompt(system, user))
//
// # Tool Calling
//
// Tools are declared on the Prompt and offered to backends that support them;
// model-requested invocations come back as LLMResult.ToolCalls with the
// arguments decoded into structured values:
//
//	tool, _ := llm.NewTool("get_weather", "Get the current weather",
//	    json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`))
//	prompt := llm.SimplePrompt(system, user).WithTools([]llm.Tool{tool},
//	    &llm.ToolChoice{Mode: llm.ToolChoiceAuto})
package llm
