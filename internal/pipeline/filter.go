package pipeline

import "context"

type Result struct {
	IsAllowed  bool
	Reason     string
	FilterName string
	Actions    []Action
}

type Filter interface {
	Name() string
	Process(ctx context.Context, payload Payload) (*Result, error)
}
