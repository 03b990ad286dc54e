// Package travis triggers builds through the Travis CI v3 API.
//
// TriggerService posts a build request for a repository branch and decodes the
// pending-request acknowledgement Travis returns. Requests are sent once; the
// caller decides what a failure means.
package travis
