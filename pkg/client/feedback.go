package client

import (
	"context"
	"time"

	"bookline/pkg/model"
)

type FeedbackClient struct {
	httpClient *HttpClient
}

func NewFeedbackClient(baseURL string, timeout time.Duration) *FeedbackClient {
	return &FeedbackClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// Submit posts one feedback payload with the caller's bearer token.
func (c *FeedbackClient) Submit(ctx context.Context, req *model.FeedbackRequest, authToken string) (*Response, error) {
	headers := map[string]string{}
	if authToken != "" {
		headers["Authorization"] = "Bearer " + authToken
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/feedback", req, headers)
}
