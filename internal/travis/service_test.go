package travis_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/travis"
)

const (
	testRepositoryConstant     = "MyCryptoHQ/knowledge-base"
	testTokenConstant          = "secret-token"
	expectedRequestURIConstant = "/repo/MyCryptoHQ%2Fknowledge-base/requests"
)

type capturedRequest struct {
	Method     string
	RequestURI string
	Header     http.Header
	Body       string
}

type recordingServer struct {
	mutex      sync.Mutex
	requests   []capturedRequest
	statusCode int
	body       string
}

func (server *recordingServer) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	server.mutex.Lock()
	server.requests = append(server.requests, capturedRequest{
		Method:     request.Method,
		RequestURI: request.RequestURI,
		Header:     request.Header.Clone(),
		Body:       string(body),
	})
	server.mutex.Unlock()
	writer.WriteHeader(server.statusCode)
	_, _ = io.WriteString(writer, server.body)
}

func TestTriggerServiceTriggerBuild(testInstance *testing.T) {
	testCases := []struct {
		name                    string
		request                 travis.BuildRequest
		statusCode              int
		responseBody            string
		expectedBody            string
		expectedAcknowledgement travis.RequestAcknowledgement
		expectedStatusError     *travis.UnexpectedStatusError
	}{
		{
			name:         "accepted_request",
			request:      travis.BuildRequest{Branch: "master"},
			statusCode:   http.StatusAccepted,
			responseBody: `{"@type":"pending","remaining_requests":9,"repository":{"id":1},"request":{"id":42,"branch":"master"}}`,
			expectedBody: `{"request":{"branch":"master"}}`,
			expectedAcknowledgement: travis.RequestAcknowledgement{
				StatusCode:        http.StatusAccepted,
				Type:              "pending",
				RemainingRequests: 9,
				RequestID:         42,
				Branch:            "master",
			},
		},
		{
			name:         "message_and_undecodable_response",
			request:      travis.BuildRequest{Branch: "develop", Message: "Rebuild after content merge"},
			statusCode:   http.StatusOK,
			responseBody: "ok",
			expectedBody: `{"request":{"branch":"develop","message":"Rebuild after content merge"}}`,
			expectedAcknowledgement: travis.RequestAcknowledgement{
				StatusCode: http.StatusOK,
				Branch:     "develop",
			},
		},
		{
			name:                "forbidden",
			request:             travis.BuildRequest{Branch: "master"},
			statusCode:          http.StatusForbidden,
			responseBody:        `{"@type":"error","error_type":"insufficient_access"}`,
			expectedBody:        `{"request":{"branch":"master"}}`,
			expectedStatusError: &travis.UnexpectedStatusError{StatusCode: http.StatusForbidden, Body: `{"@type":"error","error_type":"insufficient_access"}`},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subTest *testing.T) {
			handler := &recordingServer{statusCode: testCase.statusCode, body: testCase.responseBody}
			server := httptest.NewServer(handler)
			defer server.Close()

			service, serviceError := travis.NewTriggerService(zap.NewNop(), server.Client(), travis.ServiceConfiguration{
				BaseURL:    server.URL + "/",
				Repository: testRepositoryConstant,
			})
			require.NoError(subTest, serviceError)

			acknowledgement, triggerError := service.TriggerBuild(context.Background(), testTokenConstant, testCase.request)

			require.Len(subTest, handler.requests, 1)
			captured := handler.requests[0]
			require.Equal(subTest, http.MethodPost, captured.Method)
			require.Equal(subTest, expectedRequestURIConstant, captured.RequestURI)
			require.Equal(subTest, "application/json", captured.Header.Get("Content-Type"))
			require.Equal(subTest, "application/json", captured.Header.Get("Accept"))
			require.Equal(subTest, "3", captured.Header.Get("Travis-API-Version"))
			require.Equal(subTest, "token "+testTokenConstant, captured.Header.Get("Authorization"))
			require.JSONEq(subTest, testCase.expectedBody, captured.Body)

			if testCase.expectedStatusError != nil {
				var wrapped travis.TriggerError
				require.True(subTest, errors.As(triggerError, &wrapped))
				require.Equal(subTest, testRepositoryConstant, wrapped.Repository)
				var statusError travis.UnexpectedStatusError
				require.True(subTest, errors.As(triggerError, &statusError))
				require.Equal(subTest, *testCase.expectedStatusError, statusError)
				return
			}
			require.NoError(subTest, triggerError)
			require.Equal(subTest, testCase.expectedAcknowledgement, acknowledgement)
		})
	}
}

type failingClient struct {
	calls int
}

func (client *failingClient) Do(request *http.Request) (*http.Response, error) {
	client.calls++
	return nil, errors.New("connection refused")
}

func TestTriggerServiceTransportFailure(testInstance *testing.T) {
	client := &failingClient{}
	service, serviceError := travis.NewTriggerService(nil, client, travis.ServiceConfiguration{
		BaseURL:    "https://api.travis-ci.org",
		Repository: testRepositoryConstant,
	})
	require.NoError(testInstance, serviceError)
	require.Equal(testInstance, "https://api.travis-ci.org/repo/MyCryptoHQ%2Fknowledge-base/requests", service.Endpoint())

	_, triggerError := service.TriggerBuild(context.Background(), testTokenConstant, travis.BuildRequest{Branch: "master"})
	var wrapped travis.TriggerError
	require.True(testInstance, errors.As(triggerError, &wrapped))
	require.ErrorContains(testInstance, triggerError, "connection refused")
	require.Equal(testInstance, 1, client.calls)
}

func TestTriggerServiceValidation(testInstance *testing.T) {
	_, serviceError := travis.NewTriggerService(nil, nil, travis.ServiceConfiguration{Repository: testRepositoryConstant})
	require.ErrorIs(testInstance, serviceError, travis.ErrHTTPClientMissing)

	_, serviceError = travis.NewTriggerService(nil, &failingClient{}, travis.ServiceConfiguration{Repository: " "})
	require.ErrorIs(testInstance, serviceError, travis.ErrRepositoryMissing)

	client := &failingClient{}
	service, serviceError := travis.NewTriggerService(nil, client, travis.ServiceConfiguration{Repository: testRepositoryConstant})
	require.NoError(testInstance, serviceError)

	_, triggerError := service.TriggerBuild(context.Background(), "  ", travis.BuildRequest{Branch: "master"})
	require.ErrorIs(testInstance, triggerError, travis.ErrTokenMissing)

	_, triggerError = service.TriggerBuild(context.Background(), testTokenConstant, travis.BuildRequest{})
	require.ErrorIs(testInstance, triggerError, travis.ErrBranchMissing)
	require.Zero(testInstance, client.calls)
}
