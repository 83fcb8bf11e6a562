package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"yieldhop/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GatewayClient defines the calls the CLI makes against the gateway REST API.
type GatewayClient interface {
	ListChains(ctx context.Context) ([]entity.ChainDefinition, error)
	GetStaking(ctx context.Context, wallet string, chain entity.ChainKey) (entity.StakingViewDisplay, string, error)
	RefreshStaking(ctx context.Context, wallet string) (entity.StakingViewDisplay, string, error)
	GetPortfolio(ctx context.Context, wallet string) (entity.PortfolioDisplay, string, error)
	PrepareAction(ctx context.Context, wallet string, chain entity.ChainKey, kind entity.ActionKind, amount string) (entity.PreparedCall, error)
	GetAction(ctx context.Context, id string) (entity.PreparedCall, error)
	ConfirmAction(ctx context.Context, id, txHash string) (entity.ActionConfirmation, string, error)
	GetTheme(ctx context.Context) (entity.ThemePreference, error)
	SetTheme(ctx context.Context, dark bool) (entity.ThemePreference, error)
	ToggleTheme(ctx context.Context) (entity.ThemePreference, error)
}

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Data          jsoniter.RawMessage `json:"data"`
	StatusMessage string              `json:"status_message"`
	Error         string              `json:"error"`
}

// gatewayClientImpl is the fasthttp implementation of GatewayClient.
type gatewayClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGatewayClient creates a new GatewayClient for the gateway at baseURL.
func NewGatewayClient(baseURL string, timeout time.Duration, logger *zap.Logger) GatewayClient {
	return &gatewayClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("GatewayClient"),
	}
}

func (c *gatewayClientImpl) ListChains(ctx context.Context) ([]entity.ChainDefinition, error) {
	var out []entity.ChainDefinition
	_, err := c.do(ctx, fasthttp.MethodGet, "/api/v1/chains", nil, &out)
	return out, err
}

func (c *gatewayClientImpl) GetStaking(ctx context.Context, wallet string, chain entity.ChainKey) (entity.StakingViewDisplay, string, error) {
	path := "/api/v1/staking/" + url.PathEscape(wallet)
	if chain != "" {
		path += "?chain=" + url.QueryEscape(string(chain))
	}
	var out entity.StakingViewDisplay
	msg, err := c.do(ctx, fasthttp.MethodGet, path, nil, &out)
	return out, msg, err
}

func (c *gatewayClientImpl) RefreshStaking(ctx context.Context, wallet string) (entity.StakingViewDisplay, string, error) {
	var out entity.StakingViewDisplay
	msg, err := c.do(ctx, fasthttp.MethodPost, "/api/v1/staking/"+url.PathEscape(wallet)+"/refresh", nil, &out)
	return out, msg, err
}

func (c *gatewayClientImpl) GetPortfolio(ctx context.Context, wallet string) (entity.PortfolioDisplay, string, error) {
	var out entity.PortfolioDisplay
	msg, err := c.do(ctx, fasthttp.MethodGet, "/api/v1/portfolio/"+url.PathEscape(wallet), nil, &out)
	return out, msg, err
}

func (c *gatewayClientImpl) PrepareAction(ctx context.Context, wallet string, chain entity.ChainKey, kind entity.ActionKind, amount string) (entity.PreparedCall, error) {
	body := map[string]string{
		"wallet": wallet,
		"chain":  string(chain),
		"kind":   string(kind),
		"amount": amount,
	}
	var out entity.PreparedCall
	_, err := c.do(ctx, fasthttp.MethodPost, "/api/v1/actions", body, &out)
	return out, err
}

func (c *gatewayClientImpl) GetAction(ctx context.Context, id string) (entity.PreparedCall, error) {
	var out entity.PreparedCall
	_, err := c.do(ctx, fasthttp.MethodGet, "/api/v1/actions/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *gatewayClientImpl) ConfirmAction(ctx context.Context, id, txHash string) (entity.ActionConfirmation, string, error) {
	var out entity.ActionConfirmation
	msg, err := c.do(ctx, fasthttp.MethodPost, "/api/v1/actions/"+url.PathEscape(id)+"/confirm", map[string]string{"txHash": txHash}, &out)
	return out, msg, err
}

func (c *gatewayClientImpl) GetTheme(ctx context.Context) (entity.ThemePreference, error) {
	var out entity.ThemePreference
	_, err := c.do(ctx, fasthttp.MethodGet, "/api/v1/preferences/theme", nil, &out)
	return out, err
}

func (c *gatewayClientImpl) SetTheme(ctx context.Context, dark bool) (entity.ThemePreference, error) {
	var out entity.ThemePreference
	_, err := c.do(ctx, fasthttp.MethodPut, "/api/v1/preferences/theme", map[string]bool{"dark": dark}, &out)
	return out, err
}

func (c *gatewayClientImpl) ToggleTheme(ctx context.Context) (entity.ThemePreference, error) {
	var out entity.ThemePreference
	_, err := c.do(ctx, fasthttp.MethodPost, "/api/v1/preferences/theme/toggle", nil, &out)
	return out, err
}

// do sends one request and decodes the data field of the envelope into out.
func (c *gatewayClientImpl) do(ctx context.Context, method, path string, body any, out any) (string, error) {
	requestURL := c.baseURL + path
	c.logger.Debug("Requesting gateway", zap.String("method", method), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}
		req.SetBodyRaw(raw)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Gateway request failed", zap.String("url", requestURL), zap.Error(err))
			return "", fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		c.logger.Error("Gateway request failed (with default timeout)", zap.String("url", requestURL), zap.Error(err))
		return "", fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		c.logger.Error("Failed to decode gateway response",
			zap.String("url", requestURL), zap.Int("status", resp.StatusCode()), zap.ByteString("body", resp.Body()))
		return "", fmt.Errorf("failed to decode response from %s (status %d): %w", requestURL, resp.StatusCode(), err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		message := env.Error
		if message == "" {
			message = string(resp.Body())
		}
		return "", &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode data from %s: %w", requestURL, err)
		}
	}
	return env.StatusMessage, nil
}
