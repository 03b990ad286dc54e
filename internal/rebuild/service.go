package rebuild

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/travis"
)

const (
	triggerNotConfiguredMessageConstant = "rebuild trigger not configured"
	notifyCompletedMessageConstant      = "Rebuild requested"
	logFieldRequestTypeConstant         = "request_type"
	logFieldBranchConstant              = "branch"
)

// ErrTriggerNotConfigured indicates the service was built without a build trigger.
var ErrTriggerNotConfigured = errors.New(triggerNotConfiguredMessageConstant)

// NotifyOptions describes a single rebuild request.
type NotifyOptions struct {
	Token   string
	Branch  string
	Message string
}

// Service requests downstream rebuilds.
type Service struct {
	logger  *zap.Logger
	trigger travis.BuildTrigger
}

// NewService constructs a Service.
func NewService(logger *zap.Logger, trigger travis.BuildTrigger) (*Service, error) {
	if trigger == nil {
		return nil, ErrTriggerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, trigger: trigger}, nil
}

// Notify issues exactly one build request and returns its failure unchanged.
func (service *Service) Notify(executionContext context.Context, options NotifyOptions) error {
	acknowledgement, triggerError := service.trigger.TriggerBuild(executionContext, options.Token, travis.BuildRequest{
		Branch:  options.Branch,
		Message: options.Message,
	})
	if triggerError != nil {
		return triggerError
	}
	service.logger.Info(
		notifyCompletedMessageConstant,
		zap.String(logFieldBranchConstant, acknowledgement.Branch),
		zap.String(logFieldRequestTypeConstant, acknowledgement.Type),
	)
	return nil
}
