package travis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	requestsPathTemplateConstant   = "%s/repo/%s/requests"
	contentTypeHeaderConstant      = "Content-Type"
	acceptHeaderConstant           = "Accept"
	apiVersionHeaderConstant       = "Travis-API-Version"
	authorizationHeaderConstant    = "Authorization"
	jsonMediaTypeConstant          = "application/json"
	authorizationTemplateConstant  = "token %s"
	defaultAPIVersionConstant      = "3"
	maximumErrorBodyBytesConstant  = 4096
	encodeRequestErrorTemplate     = "unable to encode build request: %w"
	buildRequestErrorTemplate      = "unable to build http request: %w"
	requestSentMessageConstant     = "Requesting Travis build"
	requestAcceptedMessageConstant = "Travis accepted build request"
	responseDecodeMessageConstant  = "Unable to decode Travis response"
	logFieldRepositoryConstant     = "repository"
	logFieldBranchConstant         = "branch"
	logFieldEndpointConstant       = "endpoint"
	logFieldStatusCodeConstant     = "status_code"
	logFieldRequestIDConstant      = "request_id"
	logFieldRemainingConstant      = "remaining_requests"
)

// TriggerService sends build requests to Travis CI.
type TriggerService struct {
	logger        *zap.Logger
	client        HTTPClient
	configuration ServiceConfiguration
}

// NewTriggerService constructs a TriggerService.
func NewTriggerService(logger *zap.Logger, client HTTPClient, configuration ServiceConfiguration) (*TriggerService, error) {
	if client == nil {
		return nil, ErrHTTPClientMissing
	}
	if len(strings.TrimSpace(configuration.Repository)) == 0 {
		return nil, ErrRepositoryMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	configuration.BaseURL = strings.TrimRight(strings.TrimSpace(configuration.BaseURL), "/")
	configuration.Repository = strings.TrimSpace(configuration.Repository)
	if len(strings.TrimSpace(configuration.APIVersion)) == 0 {
		configuration.APIVersion = defaultAPIVersionConstant
	}
	return &TriggerService{logger: logger, client: client, configuration: configuration}, nil
}

// Endpoint returns the build request URL for the configured repository.
func (service *TriggerService) Endpoint() string {
	return fmt.Sprintf(requestsPathTemplateConstant, service.configuration.BaseURL, url.PathEscape(service.configuration.Repository))
}

// TriggerBuild posts a single build request. Transport failures and non-2xx responses are returned as TriggerError.
func (service *TriggerService) TriggerBuild(executionContext context.Context, token string, request BuildRequest) (RequestAcknowledgement, error) {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return RequestAcknowledgement{}, ErrTokenMissing
	}
	branch := strings.TrimSpace(request.Branch)
	if len(branch) == 0 {
		return RequestAcknowledgement{}, ErrBranchMissing
	}

	payload, encodeError := json.Marshal(requestEnvelope{Request: requestPayload{Branch: branch, Message: strings.TrimSpace(request.Message)}})
	if encodeError != nil {
		return RequestAcknowledgement{}, fmt.Errorf(encodeRequestErrorTemplate, encodeError)
	}

	endpoint := service.Endpoint()
	httpRequest, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, endpoint, bytes.NewReader(payload))
	if requestError != nil {
		return RequestAcknowledgement{}, fmt.Errorf(buildRequestErrorTemplate, requestError)
	}
	httpRequest.Header.Set(contentTypeHeaderConstant, jsonMediaTypeConstant)
	httpRequest.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)
	httpRequest.Header.Set(apiVersionHeaderConstant, service.configuration.APIVersion)
	httpRequest.Header.Set(authorizationHeaderConstant, fmt.Sprintf(authorizationTemplateConstant, trimmedToken))

	service.logger.Info(
		requestSentMessageConstant,
		zap.String(logFieldRepositoryConstant, service.configuration.Repository),
		zap.String(logFieldBranchConstant, branch),
		zap.String(logFieldEndpointConstant, endpoint),
	)

	response, responseError := service.client.Do(httpRequest)
	if responseError != nil {
		return RequestAcknowledgement{}, TriggerError{Repository: service.configuration.Repository, Cause: responseError}
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maximumErrorBodyBytesConstant))
		return RequestAcknowledgement{}, TriggerError{
			Repository: service.configuration.Repository,
			Cause:      UnexpectedStatusError{StatusCode: response.StatusCode, Body: string(body)},
		}
	}

	acknowledgement := RequestAcknowledgement{StatusCode: response.StatusCode, Branch: branch}
	var envelope responseEnvelope
	if decodeError := json.NewDecoder(response.Body).Decode(&envelope); decodeError != nil {
		service.logger.Debug(responseDecodeMessageConstant, zap.Error(decodeError))
	} else {
		acknowledgement.Type = envelope.Type
		acknowledgement.RemainingRequests = envelope.RemainingRequests
		acknowledgement.RequestID = envelope.Request.ID
		if len(envelope.Request.Branch) > 0 {
			acknowledgement.Branch = envelope.Request.Branch
		}
	}

	service.logger.Info(
		requestAcceptedMessageConstant,
		zap.String(logFieldRepositoryConstant, service.configuration.Repository),
		zap.String(logFieldBranchConstant, acknowledgement.Branch),
		zap.Int(logFieldStatusCodeConstant, acknowledgement.StatusCode),
		zap.Int64(logFieldRequestIDConstant, acknowledgement.RequestID),
		zap.Int(logFieldRemainingConstant, acknowledgement.RemainingRequests),
	)
	return acknowledgement, nil
}
