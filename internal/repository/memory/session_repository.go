package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository is the in-memory SessionStore. Sessions live for the
// process lifetime only; there is no automatic expiry.
//
// A single mutex serializes every mutation: read-modify-write on a transcript
// is not atomic on the backing cache alone, and id allocation plus insert must
// be one step. Reads return deep copies so callers can never mutate or race
// the stored transcript.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.SessionStore = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Create(ctx context.Context) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSession(r.createLocked()), nil
}

// createLocked allocates a fresh session. Caller holds r.mu.
func (r *SessionRepository) createLocked() *entity.ChatSession {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}
	r.cache.Set(session.Id.String(), session, cache.NoExpiration)
	return session
}

func (r *SessionRepository) Append(ctx context.Context, sessionID string, role, content string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var session *entity.ChatSession
	if sessionID != "" {
		if x, found := r.cache.Get(sessionID); found {
			session = x.(*entity.ChatSession)
		}
	}
	if session == nil {
		session = r.createLocked()
	}

	session.Turns = append(session.Turns, entity.ChatTurn{
		Id:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})

	if role == constant.ChatTurnRoleUser && firstUserTurnCount(session) == 1 {
		session.Title = deriveTitle(content)
	}

	return session.Id.String(), nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, contract.ErrSessionNotFound
	}
	return cloneSession(x.(*entity.ChatSession)), nil
}

func (r *SessionRepository) List(ctx context.Context) ([]entity.ChatSessionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.cache.Items()
	summaries := make([]entity.ChatSessionSummary, 0, len(items))
	for _, item := range items {
		s := item.Object.(*entity.ChatSession)
		summaries = append(summaries, entity.ChatSessionSummary{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			TurnCount: len(s.Turns),
		})
	}

	// Most recent first; id as a deterministic tie-break for equal timestamps.
	sortSummaries(summaries)
	return summaries, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.cache.Get(sessionID); !found {
		return false, nil
	}
	r.cache.Delete(sessionID)
	return true, nil
}

func firstUserTurnCount(s *entity.ChatSession) int {
	n := 0
	for _, t := range s.Turns {
		if t.Role == constant.ChatTurnRoleUser {
			n++
		}
	}
	return n
}

func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.SessionTitleMaxLen {
		return content
	}
	return string(runes[:constant.SessionTitleMaxLen]) + "..."
}

func cloneSession(s *entity.ChatSession) *entity.ChatSession {
	clone := *s
	clone.Turns = make([]entity.ChatTurn, len(s.Turns))
	copy(clone.Turns, s.Turns)
	return &clone
}

func sortSummaries(summaries []entity.ChatSessionSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].Id.String() > summaries[j].Id.String()
	})
}
