package handlers

import (
	"github.com/probelabs/llm-probe/services/selector"
	"go.uber.org/zap"
)

// Handlers aggregates the HTTP handlers and their shared dependencies
type Handlers struct {
	Hello  *HelloHandler
	Health *HealthHandler
}

// New wires all handlers to the selector service
func New(sel *selector.Service, logger *zap.Logger) *Handlers {
	return &Handlers{
		Hello:  NewHelloHandler(sel, logger),
		Health: NewHealthHandler(sel),
	}
}
