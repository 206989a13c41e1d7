package request

import (
	"context"
)

type key int

const (
	actorKey key = iota
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithActor context with the verified actor identity
func (c ContextX) WithActor(actor string) context.Context {
	return context.WithValue(c, actorKey, actor)
}

// GetActor get the verified actor identity from context
func (c ContextX) GetActor() (string, bool) {
	actor, ok := c.Value(actorKey).(string)
	return actor, ok
}
