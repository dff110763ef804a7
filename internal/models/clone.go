package models

// Deep copies. The store hands snapshots across its lock boundary, so
// anything holding a slice gets copied; decimal values are immutable and
// safe to share.

func (a *Agent) Clone() *Agent {
	if a == nil {
		return nil
	}
	out := *a
	out.Portfolio = *a.Portfolio.Clone()
	out.Settings.SafetyExits = append([]SafetyExit(nil), a.Settings.SafetyExits...)
	if a.LastTradeAt != nil {
		t := *a.LastTradeAt
		out.LastTradeAt = &t
	}
	return &out
}

func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	out := *p
	out.Positions = append([]Position(nil), p.Positions...)
	out.Trades = append([]Trade(nil), p.Trades...)
	return &out
}

func CloneAgents(agents []*Agent) []*Agent {
	out := make([]*Agent, 0, len(agents))
	for _, a := range agents {
		out = append(out, a.Clone())
	}
	return out
}
