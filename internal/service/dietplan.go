package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/dietplan/backend/internal/logging"
	"github.com/pageza/dietplan/backend/internal/models"
	"github.com/pageza/dietplan/backend/internal/types"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "llama3-70b-8192"
	// DefaultTemperature keeps the model literal about the output format.
	DefaultTemperature = 0.2

	previewLength = 100
)

// DietPlan is a generated plan that passed the compliance screen.
type DietPlan struct {
	Plan     string
	DietType models.DietType
	Model    string
}

// DietPlanOptions configures a DietPlanService. An empty Model selects
// DefaultModel and a nil Matcher selects substring matching. Temperature is
// sent as given: zero is a valid sampling temperature and is not replaced by
// DefaultTemperature.
type DietPlanOptions struct {
	Model       string
	Temperature float64
	Matcher     Matcher
}

// DietPlanService turns a diet request into a screened 7-day plan.
type DietPlanService struct {
	completer   Completer
	matcher     Matcher
	model       string
	temperature float64
}

// NewDietPlanService creates a new DietPlanService instance
func NewDietPlanService(completer Completer, opts DietPlanOptions) *DietPlanService {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Matcher == nil {
		opts.Matcher = SubstringMatcher{}
	}
	return &DietPlanService{
		completer:   completer,
		matcher:     opts.Matcher,
		model:       opts.Model,
		temperature: opts.Temperature,
	}
}

// ValidateDietRequest checks that age, weight and history were provided and
// that dietType, when present, is a string.
func ValidateDietRequest(req *types.DietRequest) error {
	if req == nil {
		return &ValidationError{Message: "No data provided", Cause: types.ErrNoData}
	}
	if !req.Age.Truthy() || !req.Weight.Truthy() || !req.History.Truthy() {
		return &ValidationError{Message: "Missing required fields: age, weight, or history"}
	}
	if _, ok := req.DietType.Text(); !req.DietType.IsNull() && !ok {
		return &ValidationError{Message: "dietType must be a string"}
	}
	return nil
}

// ResolveDietType applies the default diet to an absent or null dietType and
// parses the result.
func ResolveDietType(req *types.DietRequest) models.DietType {
	raw := models.DefaultDietType
	if s, ok := req.DietType.Text(); ok {
		raw = s
	}
	return models.ParseDietType(raw)
}

// BuildCompletionRequest renders the prompt for req into a chat completion
// request.
func (s *DietPlanService) BuildCompletionRequest(req *types.DietRequest, diet models.DietType) (CompletionRequest, error) {
	prompt := NewDietPrompt(diet, req.Age.String(), req.Weight.String(), req.History.String())

	system, err := prompt.SystemMessage()
	if err != nil {
		return CompletionRequest{}, err
	}
	user, err := prompt.UserMessage()
	if err != nil {
		return CompletionRequest{}, err
	}

	return CompletionRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: s.temperature,
	}, nil
}

// Generate validates req, asks the completion API for a plan and screens the
// result against the diet's denylist. No outbound call is made for an invalid
// request.
func (s *DietPlanService) Generate(ctx context.Context, req *types.DietRequest) (*DietPlan, error) {
	logger := logging.FromContext(ctx)

	if err := ValidateDietRequest(req); err != nil {
		logger.WithField("event", "validation_failed").Error(err.Error())
		return nil, err
	}

	diet := ResolveDietType(req)
	logger.WithField("diet_type", diet.Name).Debugf("Client prefers a %s diet", diet.Name)
	if !diet.Recognized() {
		logger.WithField("diet_type", diet.Name).Warnf("Received an unrecognized diet type: %s", diet.Name)
	}

	completionReq, err := s.BuildCompletionRequest(req, diet)
	if err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, completionReq)
	if err != nil {
		var upstreamErr *UpstreamError
		var timeoutErr *TimeoutError
		switch {
		case errors.As(err, &upstreamErr):
			logger.WithFields(log.Fields{
				"event":  "upstream_error",
				"status": upstreamErr.StatusCode,
			}).Errorf("Failed to fetch from completion API: %s", upstreamErr.Body)
		case errors.As(err, &timeoutErr):
			logger.WithField("event", "upstream_timeout").Error(timeoutErr.Error())
		default:
			logger.WithField("event", "upstream_failure").WithError(err).Error("Completion API call failed")
		}
		return nil, err
	}

	logger.WithField("event", "upstream_response").Debugf("Received response from completion API: %s...", preview(text))

	if term, found := s.matcher.Match(text, diet.Denylist()); found {
		complianceRejections.WithLabelValues(diet.Name).Inc()
		logger.WithFields(log.Fields{
			"event":     "compliance_failed",
			"diet_type": diet.Name,
			"term":      term,
		}).Errorf("Generated diet contains non-%s items despite %s request", diet.Label(), diet.Label())
		return nil, &ComplianceError{Diet: diet, Term: term}
	}

	return &DietPlan{Plan: text, DietType: diet, Model: s.model}, nil
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLength {
		return text
	}
	return string(r[:previewLength])
}
