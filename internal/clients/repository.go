package clients

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for client directory storage
type Repository interface {
	Create(ctx context.Context, req *CreateClientRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
}

// InMemoryRepository is an in-memory Repository used for tests and local runs
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*Client),
	}
}

// Create registers a new client in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		ID:        uuid.New().String(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.clients[client.ID] = client
	r.mu.Unlock()

	return client, nil
}

// GetByID retrieves a client by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}

	return client, nil
}

// List returns all clients ordered by registration time.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
