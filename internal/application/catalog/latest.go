package catalog

import (
	"context"
	"sync"
)

// Latest lleva, por clave (sesión + tipo de búsqueda), cuál es la búsqueda vigente.
// Al empezar una nueva se cancela el contexto de la anterior; una respuesta que llega
// cuando ya hay otra más reciente se descarta.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]*latestEntry
}

type latestEntry struct {
	gen    uint64
	cancel context.CancelFunc
}

// NewLatest construye el registro vacío.
func NewLatest() *Latest {
	return &Latest{entries: make(map[string]*latestEntry)}
}

// Begin registra una búsqueda nueva para key y cancela la que estuviera en curso.
// Devuelve el contexto a usar, su generación y una función que debe llamarse al terminar.
func (l *Latest) Begin(parent context.Context, key string) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	l.seq++
	gen := l.seq
	if prev, ok := l.entries[key]; ok {
		prev.cancel()
	}
	l.entries[key] = &latestEntry{gen: gen, cancel: cancel}
	l.mu.Unlock()

	done := func() {
		cancel()
		l.mu.Lock()
		if e, ok := l.entries[key]; ok && e.gen == gen {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
	return ctx, gen, done
}

// IsCurrent reporta si gen sigue siendo la búsqueda vigente de key.
func (l *Latest) IsCurrent(key string, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	return ok && e.gen == gen
}

// InFlight número de claves con búsqueda en curso.
func (l *Latest) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
