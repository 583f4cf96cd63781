// Package mock runs the in-memory development backend.
package mock

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/mockbackend"
)

// Mock serves the backend routes on Addr until the context is cancelled.
// When SeedUser is set that account is created with a few sample entries.
type Mock struct {
	Addr         string
	SeedUser     string
	SeedPassword string
	Logger       *zap.Logger

	OnListening func(net.Addr)
}

// sampleEntries seed a fresh journal.
var sampleEntries = []string{
	"Went for a long walk by the river and felt calm afterwards.",
	"Work was stressful today, too many meetings.",
	"Mixed day: good lunch with a friend, but I slept badly.",
}

func (m *Mock) Do(ctx context.Context) error {
	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := mockbackend.NewStore()
	if m.SeedUser != "" {
		if err := store.Register(m.SeedUser, m.SeedPassword); err != nil {
			return fmt.Errorf("seeding %s: %w", m.SeedUser, err)
		}
		for _, text := range sampleEntries {
			store.Add(m.SeedUser, text)
		}
		log.Info("seeded user", zap.String("user", m.SeedUser), zap.Int("entries", len(sampleEntries)))
	}

	addr := m.Addr
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mock backend: %w", err)
	}
	if m.OnListening != nil {
		m.OnListening(ln.Addr())
	}
	return mockbackend.NewServer(store, log).Serve(ctx, ln)
}
