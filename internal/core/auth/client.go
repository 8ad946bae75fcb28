package auth

import (
	"context"
	"fmt"
	"net/http"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 外部身份服務客戶端
// 將使用者憑證解析為穩定的使用者 ID 與管理員旗標
type Client struct {
	config *config.Config
	client *resty.Client
}

// identityResponse 身份服務回應
type identityResponse struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// NewClient 創建身份服務客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Auth.BaseURL).
		SetTimeout(cfg.Auth.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Auth.APIKey)).
		SetHeader("X-Client", "recipe-manager")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Resolve 解析使用者憑證
// 身份服務停用時一律回傳匿名非管理員身份
func (c *Client) Resolve(ctx context.Context, token string) (common.Identity, error) {
	if !c.config.Auth.Enabled {
		return common.AnonymousIdentity, nil
	}

	var identity identityResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-User-Token", token).
		SetResult(&identity).
		Get("/v1/identity")
	if err != nil {
		common.LogError("身份服務請求失敗", zap.Error(err))
		return common.Identity{}, fmt.Errorf("auth service error: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return common.Identity{UserID: identity.UserID, IsAdmin: identity.IsAdmin}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.Identity{}, common.ErrUnauthorized
	default:
		common.LogError("身份服務回應異常",
			zap.Int("status", resp.StatusCode()),
		)
		return common.Identity{}, fmt.Errorf("auth service returned status %d", resp.StatusCode())
	}
}
