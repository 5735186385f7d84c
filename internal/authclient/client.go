// Package authclient talks to the remote account API. The API is a GraphQL
// endpoint; the storefront only depends on the four account operations and
// treats the returned token as opaque.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/loczu/storefront/internal/models"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(accountAPIURL string) *Client {
	return &Client{
		endpoint: accountAPIURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	UserType         string `json:"userType"`
	CustomerCategory string `json:"customerCategory"`
}

// AuthPayload is the shape accountLogin and accountRegister resolve to. An
// empty Token with a Message means the API refused the credentials.
type AuthPayload struct {
	Token   string       `json:"token"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type LogoutPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const loginMutation = `mutation AccountLogin($input: UserLoginInput!) {
  accountLogin(input: $input) {
    token
    message
    user { id email fullName phone userType customerCategory adminRole sellerType isActive businessName businessAddress businessDescription createdAt }
  }
}`

const registerMutation = `mutation AccountRegister($input: UserRegisterInput!) {
  accountRegister(input: $input) {
    token
    message
    user { id email fullName phone userType customerCategory adminRole sellerType isActive businessName businessAddress businessDescription createdAt }
  }
}`

const logoutMutation = `mutation AccountLogout {
  accountLogout {
    success
    message
  }
}`

const currentUserQuery = `query GetCurrentUser {
  accountGet { id email fullName phone userType customerCategory adminRole sellerType isActive businessName businessAddress businessDescription createdAt }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, token string, req graphqlRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("account api responded with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("account api: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthPayload, error) {
	var data struct {
		AccountLogin AuthPayload `json:"accountLogin"`
	}
	req := graphqlRequest{
		Query:     loginMutation,
		Variables: map[string]any{"input": input},
	}
	if err := c.do(ctx, "", req, &data); err != nil {
		return nil, err
	}
	return &data.AccountLogin, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthPayload, error) {
	var data struct {
		AccountRegister AuthPayload `json:"accountRegister"`
	}
	req := graphqlRequest{
		Query:     registerMutation,
		Variables: map[string]any{"input": input},
	}
	if err := c.do(ctx, "", req, &data); err != nil {
		return nil, err
	}
	return &data.AccountRegister, nil
}

func (c *Client) Logout(ctx context.Context, token string) (*LogoutPayload, error) {
	var data struct {
		AccountLogout LogoutPayload `json:"accountLogout"`
	}
	if err := c.do(ctx, token, graphqlRequest{Query: logoutMutation}, &data); err != nil {
		return nil, err
	}
	return &data.AccountLogout, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var data struct {
		AccountGet *models.User `json:"accountGet"`
	}
	if err := c.do(ctx, token, graphqlRequest{Query: currentUserQuery}, &data); err != nil {
		return nil, err
	}
	return data.AccountGet, nil
}
