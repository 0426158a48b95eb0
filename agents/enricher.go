// Package agents holds the eino specialists behind the post-capture
// follow-up pipeline: enrich a captured lead, score it, draft outreach.
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

func NewLeadEnricher(ctx context.Context, baseURL, model string) (*host.Specialist, error) {
	chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   model,
		Options: &api.Options{
			Temperature: 0.7,
		},
	})
	if err != nil {
		return nil, err
	}

	chain := compose.NewChain[[]*schema.Message, *schema.Message]()

	chain.AppendLambda(compose.InvokableLambda(func(ctx context.Context, input []*schema.Message) ([]*schema.Message, error) {
		systemMsg := &schema.Message{
			Role: schema.System,
			Content: `You are an assistant for the AutoStream sales team. You receive a captured lead as a JSON object with name, email and platform. Enrich it by inferring:
- The company, from the email domain (null for free mail providers)
- Whether the address looks corporate or personal
- The acquisition channel, from the platform field
- A likely role or seniority, if the name or address hints at one
Return the enriched lead as a JSON object.`,
		}
		return append([]*schema.Message{systemMsg}, input...), nil
	}))

	chain.AppendChatModel(chatModel)

	chain.AppendLambda(compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (*schema.Message, error) {
		return &schema.Message{
			Role:    schema.Assistant,
			Content: "Enriched Lead:\n" + msg.Content,
		}, nil
	}))

	r, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &host.Specialist{
		AgentMeta: host.AgentMeta{
			Name:        "lead_enricher",
			IntendedUse: "Enrich a captured contact record with company and channel guesses",
		},
		Invokable: func(ctx context.Context, input []*schema.Message, opts ...agent.AgentOption) (*schema.Message, error) {
			return r.Invoke(ctx, input, agent.GetComposeOptions(opts...)...)
		},
	}, nil
}
