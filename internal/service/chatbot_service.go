package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/rag/prompt"
	"docchat-be/pkg/rag/retrieval"
)

// IChatbotService answers questions against the active corpus and manages the
// chat session lifecycle.
type IChatbotService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	CreateSession(ctx context.Context) (*dto.SessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
}

type chatbotService struct {
	sessions          contract.SessionStore
	retriever         *retrieval.Router
	llmProvider       llm.LLMProvider
	logger            logger.ILogger
	completionTimeout time.Duration
}

func NewChatbotService(
	sessions contract.SessionStore,
	retriever *retrieval.Router,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	completionTimeout time.Duration,
) IChatbotService {
	if completionTimeout <= 0 {
		completionTimeout = 60 * time.Second
	}
	return &chatbotService{
		sessions:          sessions,
		retriever:         retriever,
		llmProvider:       llmProvider,
		logger:            log,
		completionTimeout: completionTimeout,
	}
}

// SendChat records the question, retrieves grounding context, asks the model
// once, and records the answer.
//
// The user turn is appended before retrieval and is not rolled back when a
// later step fails: a question can end up recorded with no answer. Prior turns
// are stored for the transcript but not replayed to the model.
func (cs *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId, err := cs.sessions.Append(ctx, request.SessionId, constant.ChatTurnRoleUser, request.Message)
	if err != nil {
		return nil, err
	}

	uploaded := cs.retriever.UsingUploadedCorpus()
	cs.logger.Info("chatbot", "processing question", map[string]interface{}{
		"session_id": sessionId,
		"corpus":     corpusName(uploaded),
	})

	chunks, err := cs.retriever.Retrieve(ctx, request.Message, constant.RetrievalTopK)
	if err != nil {
		cs.logger.Error("chatbot", "context retrieval failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, serverutils.NewUpstreamError("Failed to retrieve document context", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	contextText := strings.Join(texts, "\n\n")

	builder := prompt.NewBuilder(contextText, request.Message, uploaded)

	callCtx, cancel := context.WithTimeout(ctx, cs.completionTimeout)
	defer cancel()

	reply, err := cs.llmProvider.Chat(callCtx, []llm.Message{
		{Role: "system", Content: builder.BuildSystem()},
		{Role: "user", Content: builder.BuildUser()},
	})
	if err != nil {
		cs.logger.Error("chatbot", "completion failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, serverutils.NewUpstreamError("Failed to generate a response", err)
	}

	if _, err := cs.sessions.Append(ctx, sessionId, constant.ChatTurnRoleAssistant, reply); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		Response:  reply,
		SessionId: sessionId,
	}, nil
}

func (cs *chatbotService) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := cs.sessions.Create(ctx)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (cs *chatbotService) GetAllSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error) {
	summaries, err := cs.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, &dto.SessionSummaryResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			TurnCount: s.TurnCount,
		})
	}
	return response, nil
}

func (cs *chatbotService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	session, err := cs.sessions.Get(ctx, sessionId)
	if err != nil {
		if errors.Is(err, contract.ErrSessionNotFound) {
			return nil, serverutils.NewNotFoundError("Session not found")
		}
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, sessionId string) error {
	existed, err := cs.sessions.Delete(ctx, sessionId)
	if err != nil {
		return err
	}
	if !existed {
		return serverutils.NewNotFoundError("Session not found")
	}
	return nil
}

func toSessionResponse(session *entity.ChatSession) *dto.SessionResponse {
	turns := make([]dto.ChatTurnResponse, len(session.Turns))
	for i, t := range session.Turns {
		turns[i] = dto.ChatTurnResponse{
			Id:        t.Id,
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		}
	}
	return &dto.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		Turns:     turns,
	}
}

func corpusName(uploaded bool) string {
	if uploaded {
		return "uploaded_document"
	}
	return "default"
}
