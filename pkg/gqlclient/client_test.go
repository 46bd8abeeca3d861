package gqlclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/gqlclient"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Should post the query and decode the data payload", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"hello":"world"}}`))
		}))
		defer srv.Close()

		client := gqlclient.New(gqlclient.Config{Endpoint: srv.URL})

		var out struct {
			Hello string `json:"hello"`
		}
		err := client.Execute(ctx, gqlclient.Request{
			Query:     `{ hello }`,
			Variables: map[string]any{"limit": 10},
		}, &out)

		require.NoError(t, err)
		assert.Equal(t, "world", out.Hello)
		assert.Equal(t, `{ hello }`, gotBody["query"])
	})

	t.Run("Should surface graphql errors as APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":null,"errors":[{"message":"Email already exists."}]}`))
		}))
		defer srv.Close()

		client := gqlclient.New(gqlclient.Config{Endpoint: srv.URL})

		err := client.Execute(ctx, gqlclient.Request{Query: `mutation { x }`}, nil)

		var apiErr *gqlclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Len(t, apiErr.Errors, 1)
		assert.Contains(t, apiErr.Error(), "Email already exists.")
	})

	t.Run("Should fail on non-200 responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":[{"message":"malformed request body"}]}`))
		}))
		defer srv.Close()

		client := gqlclient.New(gqlclient.Config{Endpoint: srv.URL})

		err := client.Execute(ctx, gqlclient.Request{Query: `{`}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 400")
	})

	t.Run("Should fail when the endpoint is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		client := gqlclient.New(gqlclient.Config{Endpoint: srv.URL})

		err := client.Execute(ctx, gqlclient.Request{Query: `{ hello }`}, nil)
		assert.Error(t, err)
	})
}
