package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStubAPI(t *testing.T, handler func(w http.ResponseWriter, req graphqlRequest, bearer string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req, r.Header.Get("Authorization"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginDecodesPayload(t *testing.T) {
	srv := newStubAPI(t, func(w http.ResponseWriter, req graphqlRequest, bearer string) {
		require.Empty(t, bearer)
		input := req.Variables["input"].(map[string]any)
		require.Equal(t, "john@example.com", input["email"])

		_, _ = w.Write([]byte(`{"data":{"accountLogin":{
			"token":"tok-123","message":"Login successful",
			"user":{"id":"u1","email":"john@example.com","fullName":"John Doe","userType":"CUSTOMER","isActive":true}
		}}}`))
	})

	c := NewClient(srv.URL)
	payload, err := c.Login(context.Background(), LoginInput{Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, "tok-123", payload.Token)
	require.NotNil(t, payload.User)
	require.Equal(t, "John Doe", payload.User.FullName)
}

func TestLoginSurfacesGraphQLErrors(t *testing.T) {
	srv := newStubAPI(t, func(w http.ResponseWriter, _ graphqlRequest, _ string) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid credentials"}]}`))
	})

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), LoginInput{Email: "x@y.z", Password: "wrong"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")
}

func TestLogoutSendsBearerToken(t *testing.T) {
	srv := newStubAPI(t, func(w http.ResponseWriter, _ graphqlRequest, bearer string) {
		require.Equal(t, "Bearer tok-123", bearer)
		_, _ = w.Write([]byte(`{"data":{"accountLogout":{"success":true,"message":"bye"}}}`))
	})

	c := NewClient(srv.URL)
	payload, err := c.Logout(context.Background(), "tok-123")
	require.NoError(t, err)
	require.True(t, payload.Success)
}

func TestCurrentUser(t *testing.T) {
	srv := newStubAPI(t, func(w http.ResponseWriter, _ graphqlRequest, bearer string) {
		require.Equal(t, "Bearer tok-123", bearer)
		_, _ = w.Write([]byte(`{"data":{"accountGet":{"id":"u1","email":"john@example.com"}}}`))
	})

	c := NewClient(srv.URL)
	user, err := c.CurrentUser(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

func TestNonOKStatusIsAnError(t *testing.T) {
	srv := newStubAPI(t, func(w http.ResponseWriter, _ graphqlRequest, _ string) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), LoginInput{Email: "x@y.z", Password: "pw"})
	require.Error(t, err)
}
