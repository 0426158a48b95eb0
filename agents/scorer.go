package agents

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/flow/agent/multiagent/host"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"
)

func NewLeadScorer(ctx context.Context, baseURL, model string) (*host.Specialist, error) {
	chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   model,
		Options: &api.Options{
			Temperature: 0.2,
		},
	})
	if err != nil {
		return nil, err
	}

	chain := compose.NewChain[[]*schema.Message, *schema.Message]()

	chain.AppendLambda(compose.InvokableLambda(func(ctx context.Context, input []*schema.Message) ([]*schema.Message, error) {
		system := &schema.Message{
			Role: schema.System,
			Content: `You are a lead scoring agent. Given an enriched lead captured by the AutoStream chat assistant, score its quality from 1 to 10 and briefly explain why.
Score on these criteria:
- Corporate email domain (ideal) versus free mail provider
- Acquisition platform (ideal: linkedin, product site; weaker: anonymous channels)
- Completeness of the record
- Any inferred role or company fit for a social media automation product

Respond in this format:
Score: <number from 1 to 10>
Reason: <short reason>`,
		}
		return append([]*schema.Message{system}, input...), nil
	})).
		AppendChatModel(chatModel)

	r, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &host.Specialist{
		AgentMeta: host.AgentMeta{
			Name:        "lead_scorer",
			IntendedUse: "Score a captured lead on domain, channel and completeness",
		},
		Invokable: func(ctx context.Context, input []*schema.Message, opts ...agent.AgentOption) (*schema.Message, error) {
			return r.Invoke(ctx, input, agent.GetComposeOptions(opts...)...)
		},
	}, nil
}
