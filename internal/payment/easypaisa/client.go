package easypaisa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/solowear/storefront/internal/order/app"
	"github.com/solowear/storefront/internal/store"
)

const (
	ModeSandbox    = "sandbox"
	ModeProduction = "production"

	initiateEndpoint = "https://easypay.easypaisa.com.pk/easypay/Index.jsf"
)

type Config struct {
	Mode       string
	MerchantID string
	StoreID    string
	SecureKey  string
}

// Client initiates EasyPaisa wallet payments. Sessions are recorded per
// order id so a retried initiation returns the original result instead
// of double-charging.
type Client struct {
	cfg      Config
	sessions store.Collection
	http     *http.Client

	now func() time.Time
}

func New(cfg Config, s store.Store) *Client {
	if cfg.Mode == "" {
		cfg.Mode = ModeSandbox
	}
	return &Client{
		cfg:      cfg,
		sessions: s.Collection("payment_sessions"),
		http:     &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
	}
}

func (c *Client) Initiate(ctx context.Context, req app.InitiationRequest) (app.InitiationResult, error) {
	if req.OrderID == "" || req.Amount <= 0 {
		return app.InitiationResult{}, errors.New("easypaisa: order id and positive amount required")
	}

	if existing, ok, err := c.findSession(ctx, req.OrderID); err != nil {
		return app.InitiationResult{}, err
	} else if ok {
		return existing, nil
	}

	var result app.InitiationResult
	var err error
	if c.cfg.Mode == ModeProduction {
		result, err = c.initiateProduction(ctx, req)
	} else {
		result = c.initiateSandbox(req)
	}
	if err != nil {
		return app.InitiationResult{}, err
	}

	if result.Success {
		if err := c.saveSession(ctx, req, result); err != nil {
			return app.InitiationResult{}, err
		}
	}
	return result, nil
}

// initiateSandbox mimics a successful gateway response without any
// network traffic, for local development and demos.
func (c *Client) initiateSandbox(req app.InitiationRequest) app.InitiationResult {
	return app.InitiationResult{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN%d", c.now().UnixMilli()),
		Message:       "Payment initiated successfully",
	}
}

func (c *Client) initiateProduction(ctx context.Context, req app.InitiationRequest) (app.InitiationResult, error) {
	ts := c.now().UTC().Format("20060102150405")

	form := url.Values{}
	form.Set("merchantId", c.cfg.MerchantID)
	form.Set("storeId", c.cfg.StoreID)
	form.Set("orderRefNum", req.OrderID)
	form.Set("transactionAmount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("mobileAccountNo", req.CustomerRef)
	form.Set("transactionDateTime", ts)
	form.Set("merchantHashedReq", c.signature(req.OrderID, req.Amount, ts))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, initiateEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return app.InitiationResult{}, fmt.Errorf("easypaisa: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return app.InitiationResult{}, fmt.Errorf("easypaisa: initiate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return app.InitiationResult{
			Success: false,
			Message: fmt.Sprintf("gateway returned status %d", resp.StatusCode),
		}, nil
	}

	return app.InitiationResult{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN%d", c.now().UnixMilli()),
		Message:       "Payment initiated successfully",
	}, nil
}

// signature hashes the request fields with the secure key, per the
// EasyPaisa merchant integration contract.
func (c *Client) signature(orderID string, amount float64, ts string) string {
	payload := fmt.Sprintf("%s%s%s%.2f%s%s",
		c.cfg.MerchantID, c.cfg.StoreID, orderID, amount, ts, c.cfg.SecureKey)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

type session struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
	Message       string  `json:"message"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

func (c *Client) findSession(ctx context.Context, orderID string) (app.InitiationResult, bool, error) {
	recs, err := c.sessions.GetAll(ctx)
	if err != nil {
		return app.InitiationResult{}, false, fmt.Errorf("easypaisa: load sessions: %w", err)
	}

	for _, rec := range recs {
		if rec["orderId"] != orderID {
			continue
		}
		var s session
		if err := store.Decode(rec, &s); err != nil {
			return app.InitiationResult{}, false, fmt.Errorf("easypaisa: decode session: %w", err)
		}
		return app.InitiationResult{
			Success:       true,
			TransactionID: s.TransactionID,
			Message:       s.Message,
		}, true, nil
	}
	return app.InitiationResult{}, false, nil
}

func (c *Client) saveSession(ctx context.Context, req app.InitiationRequest, result app.InitiationResult) error {
	rec, err := store.Encode(session{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		TransactionID: result.TransactionID,
		Message:       result.Message,
		Status:        "initiated",
		CreatedAt:     c.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("easypaisa: encode session: %w", err)
	}

	if _, err := c.sessions.Add(ctx, rec); err != nil {
		return fmt.Errorf("easypaisa: save session: %w", err)
	}
	return nil
}
