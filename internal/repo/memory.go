package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users and runs in process memory. The server falls
// back to it when DATABASE_URL is unset.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[string]memUser
	runs   map[uuid.UUID]Run
	now    func() time.Time
}

type memUser struct {
	id    int
	email string
	hash  string
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]memUser),
		runs:  make(map[uuid.UUID]Run),
		now:   time.Now,
	}
}

func (m *MemoryRepository) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrDuplicate
	}
	for _, u := range m.users {
		if u.email == email {
			return 0, ErrDuplicate
		}
	}
	m.nextID++
	m.users[login] = memUser{id: m.nextID, email: email, hash: password}
	return m.nextID, nil
}

func (m *MemoryRepository) GetBylogin(_ context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *MemoryRepository) SaveRun(_ context.Context, run Run) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.CreatedAt = m.now()
	m.runs[run.ID] = run
	return run, nil
}

func (m *MemoryRepository) ListRuns(_ context.Context, userID int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Run{}
	for _, r := range m.runs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) GetRun(_ context.Context, userID int, id uuid.UUID) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok || r.UserID != userID {
		return Run{}, ErrNotFound
	}
	return r, nil
}
