package stockrepo

import (
	"fmt"
	"sync"

	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// Handler recebe eventos de mudança. Não deve assumir que um snapshot lido antes
// continua válido: deve reler o store antes de agir.
type Handler = func(domain.Event)

type subscription struct {
	id      int
	handler Handler
}

type eventBus struct {
	mu     sync.Mutex
	subs   map[domain.EventKind][]subscription
	nextID int
	logger logger.Logger
}

func newEventBus(log logger.Logger) *eventBus {
	return &eventBus{subs: make(map[domain.EventKind][]subscription), logger: log}
}

func (b *eventBus) subscribe(kind domain.EventKind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[kind]
			for i, sub := range list {
				if sub.id == id {
					b.subs[kind] = append(list[:i:i], list[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *eventBus) publish(ev domain.Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[ev.Kind]))
	for _, sub := range b.subs[ev.Kind] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		b.deliver(ev, h)
	}
}

// deliver isola o pânico de um assinante para que os demais ainda recebam o evento.
func (b *eventBus) deliver(ev domain.Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Assinante de evento entrou em pânico.", fmt.Errorf("%s: %v", ev.Kind, r))
		}
	}()
	h(ev)
}

// Subscribe registra um handler para um tipo de evento e devolve a função que cancela
// a inscrição. Handlers são chamados de forma síncrona, na ordem de inscrição.
func (s *Store) Subscribe(kind domain.EventKind, h Handler) (unsubscribe func()) {
	return s.events.subscribe(kind, h)
}

// Publish emite um evento de marco semântico (tire-added, tire-moved, ...).
// Os serviços chamam depois que a gravação correspondente foi confirmada.
func (s *Store) Publish(ev domain.Event) {
	s.events.publish(ev)
}
