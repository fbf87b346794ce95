package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"cafe-assistant-be/internal/constant"
	"cafe-assistant-be/internal/dto"
	"cafe-assistant-be/internal/pkg/logger"
	"cafe-assistant-be/pkg/catalog"
	"cafe-assistant-be/pkg/fallback"
	"cafe-assistant-be/pkg/format"
	"cafe-assistant-be/pkg/knowledge"
	"cafe-assistant-be/pkg/llm"
	"cafe-assistant-be/pkg/prompt"
	"cafe-assistant-be/pkg/recommend"
	"cafe-assistant-be/pkg/session"

	"github.com/google/uuid"
)

// IAssistantService defines the assistant pipeline interface
type IAssistantService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	ContextRecommendation(ctx context.Context, request *dto.ContextRecommendationRequest) (*dto.ContextRecommendationResponse, error)
	RefreshCatalog(ctx context.Context)
}

// assistantService coordinates the resolution pipeline: session memory,
// approximate matching, recommendation scoring, and the generative
// fallback chain.
type assistantService struct {
	catalogClient *catalog.Client
	sessionStore  *session.Store
	scorer        *recommend.Scorer
	chain         *fallback.Chain
	sysLogger     logger.ILogger
	llmLogger     *log.Logger

	matchThreshold float64
	historyLimit   int

	// Swapped whole on refresh; readers always see one complete build.
	snapshot atomic.Pointer[catalog.Snapshot]
	corpus   atomic.Pointer[knowledge.Corpus]
}

func NewAssistantService(
	catalogClient *catalog.Client,
	sessionStore *session.Store,
	scorer *recommend.Scorer,
	chain *fallback.Chain,
	sysLogger logger.ILogger,
	llmLogger *log.Logger,
	matchThreshold float64,
	historyLimit int,
) IAssistantService {
	s := &assistantService{
		catalogClient:  catalogClient,
		sessionStore:   sessionStore,
		scorer:         scorer,
		chain:          chain,
		sysLogger:      sysLogger,
		llmLogger:      llmLogger,
		matchThreshold: matchThreshold,
		historyLimit:   historyLimit,
	}
	empty := catalog.Snapshot{}
	s.snapshot.Store(&empty)
	s.corpus.Store(knowledge.BuildCorpus(empty))
	return s
}

// InitLLMLogger builds the file logger for provider traffic, falling
// back to stdout when the log directory is unavailable.
func InitLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_assistant.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// RefreshCatalog refetches the catalog and atomically swaps the
// snapshot and corpus. A refresh that yields nothing keeps the previous
// corpus in place rather than emptying the assistant's knowledge.
func (s *assistantService) RefreshCatalog(ctx context.Context) {
	snap := s.catalogClient.FetchSnapshot(ctx)
	if snap.Empty() && !s.snapshot.Load().Empty() {
		s.sysLogger.Warn("catalog", "refresh yielded empty snapshot, keeping previous corpus", nil)
		return
	}

	corpus := knowledge.BuildCorpus(snap)
	s.snapshot.Store(&snap)
	s.corpus.Store(corpus)
	s.sysLogger.Info("catalog", "corpus rebuilt", map[string]interface{}{
		"items":   snap.Len(),
		"entries": corpus.Len(),
	})
}

// Chat resolves one conversational turn. Turns for the same session are
// serialized; different sessions run in parallel.
func (s *assistantService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	var response *dto.ChatResponse
	s.sessionStore.WithLock(sessionId, func() {
		sessCtx := s.sessionStore.Get(sessionId)
		raw := s.resolve(ctx, request.Message, sessCtx)

		reply := format.Classify(raw)

		sessCtx.AppendTurn(session.RoleUser, request.Message, s.historyLimit)
		if reply.Action == format.ActionNavigate {
			sessCtx.AppendTurn(session.RoleAssistant, "navigated to "+reply.Route, s.historyLimit)
		} else {
			sessCtx.AppendTurn(session.RoleAssistant, reply.Message, s.historyLimit)
		}
		s.sessionStore.Commit(sessionId, sessCtx)

		response = &dto.ChatResponse{
			Action:    reply.Action,
			SessionId: sessionId,
			Parameters: dto.ChatParameters{
				Message: reply.Message,
				Route:   reply.Route,
			},
		}
	})

	return response, nil
}

// resolve picks the cheapest strategy that can answer the turn: a
// confident corpus match, then the recommendation scorer, then the
// generative chain. It also updates the session's remembered intent.
func (s *assistantService) resolve(ctx context.Context, message string, sessCtx *session.Context) string {
	corpus := s.corpus.Load()
	snapshot := s.snapshot.Load()

	wantsRecommendation := recommend.LooksLikeRequest(message)
	query := recommend.InferQuery(message, sessCtx)
	sessCtx.RememberCategory(query.Category)
	sessCtx.RememberPriceIntent(query.PriceIntent)

	// Cheap path: a confident knowledge match answers directly, unless
	// the guest is clearly asking for a suggestion.
	if !wantsRecommendation {
		if cand, ok := corpus.BestMatch(message, s.matchThreshold); ok {
			s.llmLogger.Printf("[MATCH] score=%.2f session=%s", cand.Score, sessCtx.SessionId)
			return cand.Entry.Response
		}
	}

	if wantsRecommendation {
		result, err := s.scorer.Pick(query, snapshot.All())
		if err != nil {
			s.llmLogger.Printf("[RECOMMEND] empty result for session=%s", sessCtx.SessionId)
			return constant.EmptyRecommendationReply
		}
		return renderRecommendation(result)
	}

	return s.generate(ctx, message, sessCtx, *snapshot)
}

// generate runs the fallback chain; on total exhaustion the guest gets
// the deterministic apology, never the underlying error.
func (s *assistantService) generate(ctx context.Context, message string, sessCtx *session.Context, snapshot catalog.Snapshot) string {
	builder := prompt.NewContextualBuilder(snapshot, message, historyMessages(sessCtx))
	raw, attempts, err := s.chain.Respond(ctx, builder.Messages())
	if err != nil {
		s.sysLogger.Error("assistant", "generation failed", map[string]interface{}{
			"error":    err.Error(),
			"attempts": len(attempts),
		})
		return constant.ApologyReply
	}
	return raw
}

func historyMessages(sessCtx *session.Context) []llm.Message {
	messages := make([]llm.Message, 0, len(sessCtx.History))
	for _, turn := range sessCtx.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Text})
	}
	return messages
}

func renderRecommendation(result recommend.Result) string {
	names := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		names = append(names, fmt.Sprintf("%s (%s, %s)",
			item.Name, item.Category, knowledge.FormatPrice(item.Price)))
	}

	if result.Relaxed {
		return constant.RelaxedRecommendationPrefix + strings.Join(names, " with ")
	}
	return constant.RecommendationPrefix + strings.Join(names, " with ") + "?"
}

// ContextRecommendation serves the storefront's mood/activity widget: a
// drink pick plus a complementary snack when one qualifies.
func (s *assistantService) ContextRecommendation(ctx context.Context, request *dto.ContextRecommendationRequest) (*dto.ContextRecommendationResponse, error) {
	snapshot := s.snapshot.Load()

	drink, snack, err := s.scorer.PickPair(request.Mood, request.Activity, snapshot.All())
	if err != nil {
		return nil, err
	}

	response := &dto.ContextRecommendationResponse{
		Coffee: itemSummary(drink),
		Snack:  itemSummary(snack),
	}
	return response, nil
}

func itemSummary(item *catalog.Item) *dto.CatalogItemSummary {
	if item == nil {
		return nil
	}
	return &dto.CatalogItemSummary{
		Id:          item.Id,
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.Price,
		Description: item.Description,
	}
}
