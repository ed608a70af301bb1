package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/dietplan/backend/internal/service"
	"github.com/pageza/dietplan/backend/internal/types"
)

// MockCompleter is a mock implementation of service.Completer
type MockCompleter struct {
	mock.Mock
}

// Complete mocks the Complete method
func (m *MockCompleter) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockDietPlanService is a mock implementation of service.IDietPlanService
type MockDietPlanService struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockDietPlanService) Generate(ctx context.Context, req *types.DietRequest) (*service.DietPlan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DietPlan), args.Error(1)
}
