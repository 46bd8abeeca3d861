package http

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Service) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGraphQLRequest(w, r)
	if !ok {
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	s.writeJSON(r.Context(), w, http.StatusOK, result)
}

func (s *Service) decodeGraphQLRequest(w http.ResponseWriter, r *http.Request) (graphqlRequest, bool) {
	var req graphqlRequest

	if r.Method == http.MethodGet {
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
		if req.Query == "" {
			s.writeGraphQLError(w, r, "missing query parameter")
			return graphqlRequest{}, false
		}
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeGraphQLError(w, r, "malformed request body")
		return graphqlRequest{}, false
	}

	return req, true
}

func (s *Service) writeGraphQLError(w http.ResponseWriter, r *http.Request, msg string) {
	s.writeJSON(r.Context(), w, http.StatusBadRequest, map[string]any{
		"errors": []map[string]string{
			{"message": msg},
		},
	})
}
