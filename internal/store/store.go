// Package store holds all state of one simulation session in memory.
// Sessions are explicit objects: independent simulations (tests, multiple
// hosts) each build their own Store, there are no package globals and no
// persistence.
package store

import (
	"errors"
	"sync"

	"crowdlike/internal/engine"
	"crowdlike/internal/models"
)

var ErrAgentNotFound = errors.New("agent not found")

// Session is the mutable state guarded by the Store: the owning user, the
// user's agents, the anonymous crowd pool, and the derived views that are
// recomputed wholesale after every mutation.
type Session struct {
	User         *models.User
	Agents       []*models.Agent
	Crowd        []*models.Agent
	Metrics      models.CrowdMetrics
	Leaderboards map[models.Period][]models.LeaderboardEntry

	// AvgTradesPerDay feeds the crowd aggregate; it is a configured
	// constant, not a computed statistic.
	AvgTradesPerDay float64
}

// All returns user agents and crowd agents as one snapshot set, user
// agents first. Aggregation and ranking run over this combined view.
func (s *Session) All() []*models.Agent {
	out := make([]*models.Agent, 0, len(s.Agents)+len(s.Crowd))
	out = append(out, s.Agents...)
	out = append(out, s.Crowd...)
	return out
}

// FindAgent looks up a user-owned agent. Crowd members are anonymous and
// not individually addressable.
func (s *Session) FindAgent(id string) *models.Agent {
	for _, a := range s.Agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// RemoveAgent deletes a user-owned agent outright (deletion, not a status
// transition) and reports whether it existed.
func (s *Session) RemoveAgent(id string) bool {
	for i, a := range s.Agents {
		if a.ID == id {
			s.Agents = append(s.Agents[:i], s.Agents[i+1:]...)
			return true
		}
	}
	return false
}

// Recompute replaces the derived views from the current agent set and
// refreshes each user agent's crowd deviation. Callers invoke it after a
// mutation fully completes; it never runs concurrently with one.
func (s *Session) Recompute() {
	all := s.All()
	s.Metrics = engine.AggregateCrowd(all, s.AvgTradesPerDay)
	if s.Leaderboards == nil {
		s.Leaderboards = make(map[models.Period][]models.LeaderboardEntry, len(models.Periods))
	}
	for _, period := range models.Periods {
		s.Leaderboards[period] = engine.Rank(all, period)
	}
	for _, a := range s.Agents {
		a.Performance.CrowdDeviation = engine.CrowdDeviation(a, s.Metrics)
	}
}

// Store serializes access to one Session. Trade execution is a
// read-modify-write across cash, a position and performance fields, so
// every mutation runs as one critical section.
type Store struct {
	mu      sync.RWMutex
	session Session
}

func New(user *models.User, avgTradesPerDay float64) *Store {
	return &Store{
		session: Session{
			User:            user,
			Leaderboards:    make(map[models.Period][]models.LeaderboardEntry, len(models.Periods)),
			AvgTradesPerDay: avgTradesPerDay,
		},
	}
}

// Update runs fn against the session under the write lock. State observed
// by later readers reflects either all of fn's changes or, when fn returns
// an error, whatever fn chose to leave behind; engine operations are
// all-or-nothing so services simply return early on failure.
func (st *Store) Update(fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(&st.session)
}

// View runs fn against the session under the read lock. fn must not
// mutate and must not retain references past its return; hand out clones.
func (st *Store) View(fn func(*Session)) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	fn(&st.session)
}

func (st *Store) UserSnapshot() models.User {
	var u models.User
	st.View(func(s *Session) { u = *s.User })
	return u
}

func (st *Store) AgentsSnapshot() []*models.Agent {
	var out []*models.Agent
	st.View(func(s *Session) { out = models.CloneAgents(s.Agents) })
	return out
}

func (st *Store) AgentSnapshot(id string) (*models.Agent, error) {
	var out *models.Agent
	st.View(func(s *Session) { out = s.FindAgent(id).Clone() })
	if out == nil {
		return nil, ErrAgentNotFound
	}
	return out, nil
}

func (st *Store) MetricsSnapshot() models.CrowdMetrics {
	var m models.CrowdMetrics
	st.View(func(s *Session) {
		m = s.Metrics
		m.TopStrategies = append([]models.StrategyCount(nil), s.Metrics.TopStrategies...)
	})
	return m
}

func (st *Store) LeaderboardSnapshot(period models.Period) []models.LeaderboardEntry {
	var out []models.LeaderboardEntry
	st.View(func(s *Session) {
		out = append(out, s.Leaderboards[period]...)
	})
	return out
}

func (st *Store) AgentCounts() (user, crowd int) {
	st.View(func(s *Session) {
		user = len(s.Agents)
		crowd = len(s.Crowd)
	})
	return user, crowd
}
