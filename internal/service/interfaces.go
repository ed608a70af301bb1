package service

import (
	"context"

	"github.com/pageza/dietplan/backend/internal/types"
)

// Completer sends a chat completion request and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// IDietPlanService defines the interface for diet plan generation
type IDietPlanService interface {
	Generate(ctx context.Context, req *types.DietRequest) (*DietPlan, error)
}
