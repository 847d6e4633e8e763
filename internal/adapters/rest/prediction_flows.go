package rest

import (
	"sync"
	"time"

	"listing-portal/internal/core/port/usecases_port"
)

const defaultFlowIdleTTL = 30 * time.Minute

// PredictionFlows держит по одному потоку предсказания на сессию, чтобы
// отбрасывание устаревших ответов работало в пределах одной страницы.
type PredictionFlows struct {
	mu      sync.Mutex
	newFlow func() usecases_port.RequestPredictionUseCasePort
	flows   map[string]*flowEntry
	idleTTL time.Duration
	now     func() time.Time
}

type flowEntry struct {
	flow     usecases_port.RequestPredictionUseCasePort
	lastUsed time.Time
}

func NewPredictionFlows(newFlow func() usecases_port.RequestPredictionUseCasePort) *PredictionFlows {
	return &PredictionFlows{
		newFlow: newFlow,
		flows:   make(map[string]*flowEntry),
		idleTTL: defaultFlowIdleTTL,
		now:     time.Now,
	}
}

// For возвращает поток сессии, создавая его при первом обращении.
func (p *PredictionFlows) For(sessionID string) usecases_port.RequestPredictionUseCasePort {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for id, e := range p.flows {
		if now.Sub(e.lastUsed) > p.idleTTL {
			delete(p.flows, id)
		}
	}

	e, ok := p.flows[sessionID]
	if !ok {
		e = &flowEntry{flow: p.newFlow()}
		p.flows[sessionID] = e
	}
	e.lastUsed = now
	return e.flow
}

// Len - число активных потоков.
func (p *PredictionFlows) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.flows)
}
