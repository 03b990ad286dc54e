package travis

import (
	"context"
	"net/http"
)

// HTTPClient executes HTTP requests.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// ServiceConfiguration locates the Travis API and the repository whose builds are requested.
type ServiceConfiguration struct {
	BaseURL    string
	Repository string
	APIVersion string
}

// BuildRequest describes the build to trigger.
type BuildRequest struct {
	Branch  string
	Message string
}

// RequestAcknowledgement summarizes the API response to a build request.
type RequestAcknowledgement struct {
	StatusCode        int
	Type              string
	RemainingRequests int
	RequestID         int64
	Branch            string
}

// BuildTrigger requests builds for a repository.
type BuildTrigger interface {
	TriggerBuild(executionContext context.Context, token string, request BuildRequest) (RequestAcknowledgement, error)
}

type requestEnvelope struct {
	Request requestPayload `json:"request"`
}

type requestPayload struct {
	Branch  string `json:"branch"`
	Message string `json:"message,omitempty"`
}

type responseEnvelope struct {
	Type              string          `json:"@type"`
	RemainingRequests int             `json:"remaining_requests"`
	Request           responseRequest `json:"request"`
}

type responseRequest struct {
	ID     int64  `json:"id"`
	Branch string `json:"branch"`
}
