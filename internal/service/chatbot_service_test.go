package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/repository/memory"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/rag/lexical"
	"docchat-be/pkg/rag/retrieval"
	"docchat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	for _, m := range history {
		switch m.Role {
		case "system":
			f.lastSystem = m.Content
		case "user":
			f.lastUser = m.Content
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeVector struct {
	chunks []store.Chunk
	err    error
	calls  int
}

func (f *fakeVector) Search(ctx context.Context, query string, k int) ([]store.Chunk, error) {
	f.calls++
	return f.chunks, f.err
}

func newTestService(idx *lexical.Index, vector retrieval.VectorSearcher, model llm.LLMProvider) (IChatbotService, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository()
	router := retrieval.NewRouter(idx, vector)
	svc := NewChatbotService(sessions, router, model, logger.NewNopLogger(), 10*time.Second)
	return svc, sessions
}

func TestSendChatAgainstUploadedDocument(t *testing.T) {
	ctx := context.Background()

	idx := lexical.NewIndex()
	idx.Index([]store.Chunk{
		{Text: "The warranty lasts two years.", Metadata: map[string]string{"source": constant.ChunkMetadataSourceUploaded}},
		{Text: "Shipping takes five days.", Metadata: map[string]string{"source": constant.ChunkMetadataSourceUploaded}},
	})
	vector := &fakeVector{chunks: []store.Chunk{{Text: "should not be used"}}}
	model := &fakeLLM{reply: "The warranty lasts **two years**."}

	svc, _ := newTestService(idx, vector, model)

	res, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "How long is the warranty?"})
	require.NoError(t, err)
	assert.Equal(t, "The warranty lasts **two years**.", res.Response)
	assert.NotEmpty(t, res.SessionId)

	// The uploaded corpus answers, not the vector backend.
	assert.Equal(t, 0, vector.calls)
	assert.Contains(t, model.lastSystem, "The warranty lasts two years.")
	assert.Contains(t, model.lastSystem, "your uploaded document")
	assert.Contains(t, model.lastUser, "How long is the warranty?")
}

func TestSendChatUsesVectorCorpusWithoutUpload(t *testing.T) {
	ctx := context.Background()

	vector := &fakeVector{chunks: []store.Chunk{
		{Text: "Our refund policy allows returns within 30 days."},
	}}
	model := &fakeLLM{reply: "Returns are accepted within 30 days."}

	svc, _ := newTestService(lexical.NewIndex(), vector, model)

	res, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "What is the refund policy?"})
	require.NoError(t, err)
	assert.Equal(t, 1, vector.calls)
	assert.Contains(t, model.lastSystem, "Our refund policy allows returns within 30 days.")
	assert.Contains(t, model.lastSystem, "the available documents")
	assert.NotEmpty(t, res.SessionId)
}

func TestSendChatRecordsBothTurns(t *testing.T) {
	ctx := context.Background()

	model := &fakeLLM{reply: "answer"}
	svc, sessions := newTestService(lexical.NewIndex(), &fakeVector{}, model)

	res, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "question"})
	require.NoError(t, err)

	session, err := sessions.Get(ctx, res.SessionId)
	require.NoError(t, err)
	require.Len(t, session.Turns, 2)
	assert.Equal(t, constant.ChatTurnRoleUser, session.Turns[0].Role)
	assert.Equal(t, "question", session.Turns[0].Content)
	assert.Equal(t, constant.ChatTurnRoleAssistant, session.Turns[1].Role)
	assert.Equal(t, "answer", session.Turns[1].Content)
}

func TestSendChatContinuesExistingSession(t *testing.T) {
	ctx := context.Background()

	model := &fakeLLM{reply: "answer"}
	svc, sessions := newTestService(lexical.NewIndex(), &fakeVector{}, model)

	first, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "first"})
	require.NoError(t, err)
	second, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "second", SessionId: first.SessionId})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	session, err := sessions.Get(ctx, first.SessionId)
	require.NoError(t, err)
	assert.Len(t, session.Turns, 4)
}

func TestSendChatRetrievalFailureKeepsUserTurn(t *testing.T) {
	ctx := context.Background()

	vector := &fakeVector{err: errors.New("vector backend down")}
	model := &fakeLLM{reply: "never reached"}
	svc, sessions := newTestService(lexical.NewIndex(), vector, model)

	_, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "doomed question"})
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, 0, model.calls)

	// The user turn is recorded even though no answer followed.
	summaries, err := sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	session, err := sessions.Get(ctx, summaries[0].Id.String())
	require.NoError(t, err)
	require.Len(t, session.Turns, 1)
	assert.Equal(t, "doomed question", session.Turns[0].Content)
}

func TestSendChatCompletionFailureKeepsUserTurn(t *testing.T) {
	ctx := context.Background()

	model := &fakeLLM{err: errors.New("completion timeout")}
	svc, sessions := newTestService(lexical.NewIndex(), &fakeVector{}, model)

	_, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "unanswered"})
	require.Error(t, err)

	summaries, _ := sessions.List(ctx)
	require.Len(t, summaries, 1)
	session, _ := sessions.Get(ctx, summaries[0].Id.String())
	require.Len(t, session.Turns, 1)
	assert.Equal(t, constant.ChatTurnRoleUser, session.Turns[0].Role)
}

func TestSendChatJoinsChunksWithBlankLine(t *testing.T) {
	ctx := context.Background()

	vector := &fakeVector{chunks: []store.Chunk{
		{Text: "chunk one"},
		{Text: "chunk two"},
	}}
	model := &fakeLLM{reply: "ok"}
	svc, _ := newTestService(lexical.NewIndex(), vector, model)

	_, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: "q"})
	require.NoError(t, err)
	assert.Contains(t, model.lastSystem, "chunk one\n\nchunk two")
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(lexical.NewIndex(), &fakeVector{}, &fakeLLM{reply: "ok"})

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	fetched, err := svc.GetSession(ctx, created.Id.String())
	require.NoError(t, err)
	assert.Equal(t, created.Id, fetched.Id)

	all, err := svc.GetAllSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteSession(ctx, created.Id.String()))

	err = svc.DeleteSession(ctx, created.Id.String())
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestGetSessionUnknownIdIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(lexical.NewIndex(), &fakeVector{}, &fakeLLM{})

	_, err := svc.GetSession(ctx, "c9e0b0aa-0000-0000-0000-000000000000")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestSessionTitleFromFirstChat(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(lexical.NewIndex(), &fakeVector{}, &fakeLLM{reply: "ok"})

	long := strings.Repeat("x", 40)
	res, err := svc.SendChat(ctx, &dto.SendChatRequest{Message: long})
	require.NoError(t, err)

	session, err := sessions.Get(ctx, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 30)+"...", session.Title)
}
