package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms/ollama"
	lctools "github.com/tmc/langchaingo/tools"

	"github.com/Aksharma127/social-to-lead-agent/agent"
	"github.com/Aksharma127/social-to-lead-agent/intent"
	"github.com/Aksharma127/social-to-lead-agent/rag"
	"github.com/Aksharma127/social-to-lead-agent/tools"
	"github.com/Aksharma127/social-to-lead-agent/utils"
)

const kbNamespace = "autostream-kb"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	model := os.Getenv("OLLAMA_MODEL")
	embedModel := os.Getenv("EMBED_MODEL")
	chromaURL := os.Getenv("CHROMA_URL")
	kbPath := os.Getenv("KB_PATH")
	if kbPath == "" {
		kbPath = "autostream_kb.json"
	}

	chatCmd := flag.Bool("chat", false, "Chat with the agent until a lead is captured")
	seedCmd := flag.Bool("seed", false, "Seed the Chroma vector store from the knowledge base")
	deleteCmd := flag.Bool("delete", false, "Delete the Chroma knowledge base collection")
	webCmd := flag.Bool("web", false, "Run the HTTP chat API")

	flag.Parse()

	ctx := context.Background()

	switch {
	case *seedCmd:
		passages, err := utils.LoadKnowledgeBase(kbPath)
		if err != nil {
			log.Fatalf("failed to load knowledge base: %v", err)
		}
		store, err := utils.NewVectorStore(chromaURL, embedModel, kbNamespace)
		if err != nil {
			log.Fatalf("failed to initialize vector store: %v", err)
		}
		if err := utils.SeedKnowledgeBase(ctx, store, passages); err != nil {
			log.Fatalf("failed to seed vector store: %v", err)
		}
		log.Println("Chroma vector store seeded successfully.")

	case *deleteCmd:
		store, err := utils.NewVectorStore(chromaURL, embedModel, kbNamespace)
		if err != nil {
			log.Fatalf("failed to initialize vector store: %v", err)
		}
		if err := store.RemoveCollection(); err != nil {
			log.Fatalf("failed to delete Chroma collection: %v", err)
		}
		log.Println("Chroma vector store deleted successfully.")

	case *chatCmd:
		retriever := buildRetriever(chromaURL, embedModel, kbPath)
		ag := agent.New(buildClassifier(model), retriever, tools.LogSink{})
		runChat(ctx, ag, newFollowUp(retriever))

	case *webCmd:
		retriever := buildRetriever(chromaURL, embedModel, kbPath)
		ag := agent.New(buildClassifier(model), retriever, tools.LogSink{})
		startAPI(ctx, ag, tools.CaptureLeadTool{Sink: tools.LogSink{}}, newFollowUp(retriever))

	default:
		fmt.Println("Please enter command: -chat | -seed | -delete | -web")
	}
}

// buildClassifier picks the LLM classifier when a model is configured,
// otherwise the rule-based one. Missing config must never crash the process.
func buildClassifier(model string) intent.Classifier {
	if model == "" {
		slog.Info("OLLAMA_MODEL not set, using rule-based intent classifier")
		return intent.RuleClassifier{}
	}
	llm, err := ollama.New(ollama.WithModel(model))
	if err != nil {
		slog.Warn("failed to create Ollama client, using rule-based classifier", "error", err)
		return intent.RuleClassifier{}
	}
	return intent.NewLLMClassifier(llm)
}

func buildRetriever(chromaURL, embedModel, kbPath string) rag.Retriever {
	if chromaURL != "" && embedModel != "" {
		store, err := utils.NewVectorStore(chromaURL, embedModel, kbNamespace)
		if err == nil {
			return &rag.VectorRetriever{Store: store}
		}
		slog.Warn("failed to open vector store, falling back to keyword retrieval", "error", err)
	}
	passages, err := utils.LoadKnowledgeBase(kbPath)
	if err != nil {
		slog.Warn("failed to load knowledge base, retrieval will return no context", "error", err)
	}
	return rag.NewKeywordRetriever(passages)
}

// followUpFunc drafts a welcome email for a freshly captured lead.
type followUpFunc func(ctx context.Context, lead tools.Lead) (string, error)

// newFollowUp builds the post-capture draft pipeline, shared by the CLI and
// web paths. Returns nil when no Ollama host is configured.
func newFollowUp(retriever rag.Retriever) followUpFunc {
	baseURL := os.Getenv("OLLAMA_HOST")
	model := os.Getenv("OLLAMA_MODEL")
	if baseURL == "" || model == "" {
		return nil
	}
	kb, _ := retriever.(lctools.Tool)
	return func(ctx context.Context, lead tools.Lead) (string, error) {
		return runFollowUp(ctx, baseURL, model, lead, kb)
	}
}

func leadFromState(state *agent.ConversationState) tools.Lead {
	lead := tools.Lead{
		Name:     state.UserDetails[agent.DetailName],
		Email:    state.UserDetails[agent.DetailEmail],
		Platform: state.UserDetails[agent.DetailPlatform],
	}
	if lead.Platform == "" {
		lead.Platform = "unknown"
	}
	return lead
}

func runChat(ctx context.Context, ag *agent.Agent, followUp followUpFunc) {
	state := agent.NewConversationState("cli-session")
	reader := bufio.NewReader(os.Stdin)

	for !state.LeadCaptured {
		fmt.Print("User: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal(err)
		}
		for _, reply := range ag.RunTurn(ctx, state, strings.TrimSpace(line)) {
			fmt.Printf("Agent: %s\n", reply)
		}
	}

	if followUp == nil {
		return
	}
	draft, err := followUp(ctx, leadFromState(state))
	if err != nil {
		slog.Warn("follow-up pipeline failed", "error", err)
		return
	}
	fmt.Println("\nSuggested follow-up email:\n" + draft)
}
