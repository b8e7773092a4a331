package onboarding

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager holds the in-flight flows, one per session token. Flows live
// only in memory; the sweep drops flows idle past the TTL so abandoned
// sessions do not accumulate.
type Manager struct {
	mu     sync.Mutex
	flows  map[string]*Flow
	ttl    time.Duration
	logger *zap.Logger
}

func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		flows:  make(map[string]*Flow),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the session's flow, creating one at step 0 on first use.
func (m *Manager) Get(sessionToken string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[sessionToken]
	if !ok {
		f = NewFlow()
		m.flows[sessionToken] = f
	}
	return f
}

// Remove drops the session's flow, after successful submission or on
// sign-out.
func (m *Manager) Remove(sessionToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, sessionToken)
}

// Len reports the number of in-flight flows.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flows)
}

// Run sweeps idle flows until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var dropped int
	for token, f := range m.flows {
		if now.Sub(f.idleSince()) > m.ttl {
			delete(m.flows, token)
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Info("swept idle onboarding flows", zap.Int("dropped", dropped), zap.Int("remaining", len(m.flows)))
	}
}
