package pipeline

import (
	"context"
	"testing"
)

type mockFilter struct {
	name      string
	shouldErr bool
	allow     bool
	reason    string
	actions   []Action
}

func (f *mockFilter) Name() string { return f.name }
func (f *mockFilter) Process(_ context.Context, _ Payload) (*Result, error) {
	if f.shouldErr {
		return nil, context.DeadlineExceeded
	}
	return &Result{
		IsAllowed:  f.allow,
		Reason:     f.reason,
		FilterName: f.name,
		Actions:    f.actions,
	}, nil
}

func TestManager_Process(t *testing.T) {
	tests := []struct {
		name        string
		filters     []Filter
		wantAllowed bool
		wantFilter  string
		wantActions int
		wantErr     bool
	}{
		{
			name:        "No filters",
			filters:     []Filter{},
			wantAllowed: true,
		},
		{
			name: "All pass",
			filters: []Filter{
				&mockFilter{name: "f1", allow: true},
				&mockFilter{name: "f2", allow: true},
			},
			wantAllowed: true,
		},
		{
			name: "First blocks",
			filters: []Filter{
				&mockFilter{name: "f1", allow: false, reason: "fail1", actions: []Action{SendTextAction{Text: "x"}}},
				&mockFilter{name: "f2", allow: true},
			},
			wantAllowed: false,
			wantFilter:  "f1",
			wantActions: 1,
		},
		{
			name: "Second blocks",
			filters: []Filter{
				&mockFilter{name: "f1", allow: true},
				&mockFilter{name: "f2", allow: false, reason: "fail2", actions: []Action{DeleteMessageAction{MessageID: 1}, ReplyTextAction{ToMessageID: 1, Text: "no"}}},
			},
			wantAllowed: false,
			wantFilter:  "f2",
			wantActions: 2,
		},
		{
			name: "Allowed filters contribute actions",
			filters: []Filter{
				&mockFilter{name: "f1", allow: true, actions: []Action{ReplyTextAction{ToMessageID: 1, Text: "1/3"}}},
				&mockFilter{name: "f2", allow: true},
			},
			wantAllowed: true,
			wantActions: 1,
		},
		{
			name: "Filter error",
			filters: []Filter{
				&mockFilter{name: "f1", shouldErr: true},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.filters...)
			res, err := m.Process(context.Background(), Payload{ChatID: 123, Text: "hello"})
			if (err != nil) != tt.wantErr {
				t.Errorf("Process() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if res.IsAllowed != tt.wantAllowed {
				t.Errorf("Process() allowed = %v, want %v", res.IsAllowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && res.FilterName != tt.wantFilter {
				t.Errorf("Process() filter = %v, want %v", res.FilterName, tt.wantFilter)
			}
			if len(res.Actions) != tt.wantActions {
				t.Errorf("Process() actions = %d, want %d", len(res.Actions), tt.wantActions)
			}
		})
	}
}
