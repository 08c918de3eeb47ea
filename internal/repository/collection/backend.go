// Package collection guarda coleções serializadas (chave -> array JSON) para o
// store de entidades. Cada backend só conhece bytes; o formato é do store.
package collection

import (
	"context"
	"sync"
)

// Backend é o armazenamento chave/valor das coleções locais.
// Read devolve (nil, nil) quando a chave não existe.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// MemoryBackend mantém as coleções em memória. Usado em testes e com STORE_BACKEND=memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend cria um backend vazio.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (b *MemoryBackend) Write(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := make([]byte, len(data))
	copy(v, data)
	b.data[key] = v
	return nil
}
