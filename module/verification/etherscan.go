package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Status is the state of a submitted verification request.
type Status int

const (
	StatusPending Status = iota
	StatusVerified
	StatusAlreadyVerified
)

// SourceSubmission is the payload of a verifysourcecode request.
type SourceSubmission struct {
	Address string
	// ContractName is the fully qualified "<source>:<contract>" name.
	ContractName    string
	CompilerVersion string
	// StandardJSONInput is the solc standard JSON input from the build info.
	StandardJSONInput string
	// ConstructorArgs is the hex ABI encoding without 0x prefix.
	ConstructorArgs string
}

// EtherscanClient talks to an Etherscan compatible contract verification
// API (Etherscan v2, Blockscout and most forks).
type EtherscanClient struct {
	client  *http.Client
	apiURL  string
	apiKey  string
	chainID *big.Int
}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func NewEtherscanClient(apiURL string, apiKey string, chainID *big.Int, timeout time.Duration) *EtherscanClient {
	return &EtherscanClient{
		client:  &http.Client{Timeout: timeout},
		apiURL:  apiURL,
		apiKey:  apiKey,
		chainID: chainID,
	}
}

// SubmitSource submits the source for verification and returns the request
// GUID used to poll its status.
func (c *EtherscanClient) SubmitSource(ctx context.Context, s SourceSubmission) (string, error) {
	form := url.Values{}
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("apikey", c.apiKey)
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("sourceCode", s.StandardJSONInput)
	form.Set("contractaddress", s.Address)
	form.Set("contractname", s.ContractName)
	form.Set("compilerversion", s.CompilerVersion)
	// the misspelling is part of the API
	form.Set("constructorArguements", s.ConstructorArgs)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(nil), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("could not create verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	if resp.Status != "1" {
		if isAlreadyVerified(resp.Result) {
			return "", ErrAlreadyVerified
		}
		return "", fmt.Errorf("verification request rejected: %s: %s", resp.Message, resp.Result)
	}
	return resp.Result, nil
}

// CheckStatus returns the state of the verification request guid. A request
// the explorer rejected is returned as an error.
func (c *EtherscanClient) CheckStatus(ctx context.Context, guid string) (Status, error) {
	query := url.Values{}
	query.Set("module", "contract")
	query.Set("action", "checkverifystatus")
	query.Set("guid", guid)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(query), nil)
	if err != nil {
		return StatusPending, fmt.Errorf("could not create status request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return StatusPending, err
	}

	result := strings.ToLower(resp.Result)
	switch {
	case strings.Contains(result, "pending"):
		return StatusPending, nil
	case isAlreadyVerified(resp.Result):
		return StatusAlreadyVerified, nil
	case resp.Status == "1" && strings.Contains(result, "pass"):
		return StatusVerified, nil
	default:
		return StatusPending, fmt.Errorf("verification failed: %s", resp.Result)
	}
}

func (c *EtherscanClient) endpoint(query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if c.chainID != nil {
		query.Set("chainid", c.chainID.String())
	}
	return c.apiURL + "?" + query.Encode()
}

func (c *EtherscanClient) do(req *http.Request) (*apiResponse, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read explorer response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	var resp apiResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("could not decode explorer response: %w", err)
	}
	return &resp, nil
}

func isAlreadyVerified(result string) bool {
	return strings.Contains(strings.ToLower(result), "already verified")
}
