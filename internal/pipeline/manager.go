package pipeline

import "context"

type Manager struct {
	filters []Filter
}

func NewManager(filters ...Filter) *Manager {
	return &Manager{filters: filters}
}

// Process runs the filters in order. The first filter that blocks the
// message ends the run; actions contributed by earlier allowing filters
// are kept so their order within the event is preserved.
func (m *Manager) Process(ctx context.Context, payload Payload) (*Result, error) {
	var actions []Action
	for _, f := range m.filters {
		res, err := f.Process(ctx, payload)
		if err != nil {
			return nil, err
		}
		actions = append(actions, res.Actions...)
		if !res.IsAllowed {
			res.Actions = actions
			return res, nil
		}
	}
	return &Result{IsAllowed: true, Actions: actions}, nil
}
