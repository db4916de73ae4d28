package verification

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiPath = "/api"

// explorerServer serves the two explorer endpoints: source submissions are
// form POSTs, status checks are GETs.
func explorerServer(t *testing.T, handler func(values map[string]string) apiResponse) *httptest.Server {
	respond := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		values := make(map[string]string)
		for k := range r.Form {
			values[k] = r.Form.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handler(values))
	}

	router := mux.NewRouter()
	router.HandleFunc(apiPath, respond).
		Methods(http.MethodPost).
		Headers("Content-Type", "application/x-www-form-urlencoded")
	router.HandleFunc(apiPath, respond).
		Methods(http.MethodGet).
		Queries("action", "checkverifystatus")
	return httptest.NewServer(router)
}

func TestEtherscanSubmitSource(t *testing.T) {
	var received map[string]string
	server := explorerServer(t, func(values map[string]string) apiResponse {
		received = values
		return apiResponse{Status: "1", Message: "OK", Result: "guid-123"}
	})
	defer server.Close()

	client := NewEtherscanClient(server.URL+apiPath, "key", big.NewInt(11155111), time.Second)
	guid, err := client.SubmitSource(context.Background(), SourceSubmission{
		Address:           "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		ContractName:      "contracts/Asistencia.sol:Asistencia",
		CompilerVersion:   "v0.8.28+commit.7893614a",
		StandardJSONInput: `{"language":"Solidity"}`,
		ConstructorArgs:   "abcd",
	})
	require.NoError(t, err)
	assert.Equal(t, "guid-123", guid)

	assert.Equal(t, "verifysourcecode", received["action"])
	assert.Equal(t, "11155111", received["chainid"])
	assert.Equal(t, "key", received["apikey"])
	assert.Equal(t, "abcd", received["constructorArguements"])
	assert.Equal(t, "contracts/Asistencia.sol:Asistencia", received["contractname"])
	assert.Equal(t, "solidity-standard-json-input", received["codeformat"])
}

func TestEtherscanSubmitSourceRejected(t *testing.T) {
	t.Run("already verified", func(t *testing.T) {
		server := explorerServer(t, func(map[string]string) apiResponse {
			return apiResponse{Status: "0", Message: "NOTOK", Result: "Contract source code already verified"}
		})
		defer server.Close()

		_, err := NewEtherscanClient(server.URL+apiPath, "key", nil, time.Second).SubmitSource(context.Background(), SourceSubmission{})
		require.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("invalid key", func(t *testing.T) {
		server := explorerServer(t, func(map[string]string) apiResponse {
			return apiResponse{Status: "0", Message: "NOTOK", Result: "Invalid API Key"}
		})
		defer server.Close()

		_, err := NewEtherscanClient(server.URL+apiPath, "bad", nil, time.Second).SubmitSource(context.Background(), SourceSubmission{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewEtherscanClient(server.URL+apiPath, "key", nil, time.Second).SubmitSource(context.Background(), SourceSubmission{})
		require.Error(t, err)
	})
}

func TestEtherscanCheckStatus(t *testing.T) {
	cases := []struct {
		response apiResponse
		status   Status
		fails    bool
	}{
		{apiResponse{Status: "0", Message: "NOTOK", Result: "Pending in queue"}, StatusPending, false},
		{apiResponse{Status: "1", Message: "OK", Result: "Pass - Verified"}, StatusVerified, false},
		{apiResponse{Status: "0", Message: "NOTOK", Result: "Already Verified"}, StatusAlreadyVerified, false},
		{apiResponse{Status: "0", Message: "NOTOK", Result: "Fail - Unable to verify"}, StatusPending, true},
	}
	for _, c := range cases {
		t.Run(c.response.Result, func(t *testing.T) {
			server := explorerServer(t, func(values map[string]string) apiResponse {
				assert.Equal(t, "checkverifystatus", values["action"])
				assert.Equal(t, "guid-123", values["guid"])
				return c.response
			})
			defer server.Close()

			status, err := NewEtherscanClient(server.URL+apiPath, "key", big.NewInt(1), time.Second).CheckStatus(context.Background(), "guid-123")
			if c.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.status, status)
		})
	}
}
