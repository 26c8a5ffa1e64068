package mpesa

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"
)

// Config holds Daraja API credentials.
type Config struct {
	BaseURL        string // https://sandbox.safaricom.co.ke or production
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

// Client talks to the Safaricom Daraja API. OAuth tokens are cached until
// shortly before expiry.
type Client struct {
	config     *Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExp    time.Time
}

func NewClient(config *Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("mpesa base URL is required")
	}
	if config.ConsumerKey == "" || config.ConsumerSecret == "" {
		return nil, fmt.Errorf("mpesa consumer credentials are required")
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

func (c *Client) token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExp) {
		return c.accessToken, nil
	}

	req, err := http.NewRequest(http.MethodGet,
		c.config.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.config.ConsumerKey, c.config.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpesa oauth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mpesa oauth returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("mpesa oauth response malformed: %w", err)
	}

	c.accessToken = tr.AccessToken
	// Daraja tokens live 3599s; refresh a minute early.
	c.tokenExp = time.Now().Add(58 * time.Minute)

	return c.accessToken, nil
}

func (c *Client) STKPush(req *STKPushRequest) (*STKPushResponse, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.config.ShortCode + c.config.Passkey + timestamp))

	payload := map[string]interface{}{
		"BusinessShortCode": c.config.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int64(math.Round(req.Amount)),
		"PartyA":            req.PhoneNumber,
		"PartyB":            c.config.ShortCode,
		"PhoneNumber":       req.PhoneNumber,
		"CallBackURL":       c.config.CallbackURL,
		"AccountReference":  req.AccountRef,
		"TransactionDesc":   req.Description,
	}

	var out STKPushResponse
	if err := c.post(token, "/mpesa/stkpush/v1/processrequest", payload, &out); err != nil {
		return nil, err
	}
	if out.ResponseCode != "0" {
		return nil, fmt.Errorf("mpesa stk push rejected: code %s", out.ResponseCode)
	}
	return &out, nil
}

func (c *Client) B2CPayment(req *B2CRequest) (*B2CResponse, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"InitiatorName":   "JobSoko",
		"CommandID":       "BusinessPayment",
		"Amount":          int64(math.Round(req.Amount)),
		"PartyA":          c.config.ShortCode,
		"PartyB":          req.PhoneNumber,
		"Remarks":         req.Remarks,
		"QueueTimeOutURL": c.config.CallbackURL,
		"ResultURL":       c.config.CallbackURL,
	}

	var out B2CResponse
	if err := c.post(token, "/mpesa/b2c/v1/paymentrequest", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(token, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mpesa request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mpesa returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
