package execution

import (
	"context"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/polymarket/go-order-utils/pkg/builder"
	"github.com/polymarket/go-order-utils/pkg/model"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// DefaultCLOBURL is the production CLOB endpoint.
const DefaultCLOBURL = "https://clob.polymarket.com"

const zeroAddress = "0x0000000000000000000000000000000000000000"

// CLOBClient submits signed orders to the Polymarket CLOB.
type CLOBClient struct {
	baseURL       string
	apiKey        string
	secret        string
	passphrase    string
	privateKey    *ecdsa.PrivateKey
	address       string // EOA address (signer)
	proxyAddress  string // proxy address (maker/funder)
	signatureType model.SignatureType
	orderBuilder  builder.ExchangeOrderBuilder
	httpClient    *http.Client
	logger        *zap.Logger
}

// CLOBConfig holds configuration for the live order client.
type CLOBConfig struct {
	BaseURL       string
	APIKey        string
	Secret        string
	Passphrase    string
	PrivateKey    string
	Address       string
	ProxyAddress  string
	SignatureType int
	Logger        *zap.Logger
}

// NewCLOBClient creates a live order client.
func NewCLOBClient(cfg *CLOBConfig) (*CLOBClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	address := cfg.Address
	if address == "" {
		publicKey, _ := privateKey.Public().(*ecdsa.PublicKey)
		address = crypto.PubkeyToAddress(*publicKey).Hex()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultCLOBURL
	}

	chainID := big.NewInt(137) // Polygon mainnet
	return &CLOBClient{
		baseURL:       baseURL,
		apiKey:        cfg.APIKey,
		secret:        cfg.Secret,
		passphrase:    cfg.Passphrase,
		privateKey:    privateKey,
		address:       address,
		proxyAddress:  cfg.ProxyAddress,
		signatureType: model.SignatureType(cfg.SignatureType),
		orderBuilder:  builder.NewExchangeOrderBuilderImpl(chainID, nil),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        cfg.Logger,
	}, nil
}

// signedOrderJSON is the wire format for a signed order. Salt and
// signatureType go as integers, everything else as strings.
type signedOrderJSON struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Side          string `json:"side"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

type orderResponse struct {
	OrderID string `json:"orderID"`
	Status  string `json:"status"`
}

// PlaceOrder builds, signs and submits a single GTC order.
func (c *CLOBClient) PlaceOrder(ctx context.Context, tokenID string, side types.Side, price, size float64, strategyName string) (types.Order, error) {
	if price <= 0 || price >= 1 {
		return types.Order{}, fmt.Errorf("invalid price: %.4f", price)
	}
	if size <= 0 {
		return types.Order{}, fmt.Errorf("invalid size: %.4f", size)
	}

	makerAddress := c.address
	if c.proxyAddress != "" {
		makerAddress = c.proxyAddress
	}

	// A buy offers USDC for outcome tokens; a sell offers tokens for USDC.
	usd := price * size
	orderSide := model.BUY
	makerAmount := rawAmount(usd)
	takerAmount := rawAmount(size)
	if side == types.SideSell {
		orderSide = model.SELL
		makerAmount = rawAmount(size)
		takerAmount = rawAmount(usd)
	}

	orderData := &model.OrderData{
		Maker:         makerAddress,
		Taker:         zeroAddress,
		TokenId:       tokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Side:          orderSide,
		FeeRateBps:    "0",
		Nonce:         "0",
		Signer:        c.address,
		Expiration:    "0",
		SignatureType: c.signatureType,
	}

	signedOrder, err := c.orderBuilder.BuildSignedOrder(c.privateKey, orderData, model.CTFExchange)
	if err != nil {
		return types.Order{}, fmt.Errorf("build order: %w", err)
	}

	c.logger.Info("order-built",
		zap.String("token_id", tokenID),
		zap.String("side", string(side)),
		zap.Float64("price", price),
		zap.Float64("size", size),
		zap.String("strategy", strategyName))

	resp, err := c.submitOrder(ctx, signedOrder)
	if err != nil {
		LiveOrdersFailedTotal.Inc()
		return types.Order{}, err
	}
	LiveOrdersTotal.WithLabelValues(string(side)).Inc()

	return types.Order{
		MarketID:     tokenID,
		TokenID:      tokenID,
		Side:         side,
		Price:        price,
		Size:         size,
		StrategyName: strategyName,
		OrderID:      resp.OrderID,
		Status:       resp.Status,
		Timestamp:    time.Now(),
	}, nil
}

func (c *CLOBClient) submitOrder(ctx context.Context, order *model.SignedOrder) (*orderResponse, error) {
	sideStr := "BUY"
	if order.Side.Uint64() == uint64(model.SELL) {
		sideStr = "SELL"
	}

	jsonOrder := signedOrderJSON{
		Salt:          order.Salt.Int64(),
		Maker:         order.Maker.Hex(),
		Signer:        order.Signer.Hex(),
		Taker:         order.Taker.Hex(),
		TokenID:       order.TokenId.String(),
		MakerAmount:   order.MakerAmount.String(),
		TakerAmount:   order.TakerAmount.String(),
		Side:          sideStr,
		Expiration:    order.Expiration.String(),
		Nonce:         order.Nonce.String(),
		FeeRateBps:    order.FeeRateBps.String(),
		SignatureType: int(order.SignatureType.Int64()),
		Signature:     "0x" + common.Bytes2Hex(order.Signature),
	}

	// "owner" is the API key, not the maker address.
	orderRequest := map[string]interface{}{
		"order":     jsonOrder,
		"owner":     c.apiKey,
		"orderType": "GTC",
	}

	reqBody, err := json.Marshal(orderRequest)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	requestPath := "/order"
	signature, err := c.sign(timestamp + http.MethodPost + requestPath + string(reqBody))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+requestPath, strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// POLY_ADDRESS is the EOA address derived from the private key.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("POLY_API_KEY", c.apiKey)
	req.Header.Set("POLY_SIGNATURE", signature)
	req.Header.Set("POLY_TIMESTAMP", timestamp)
	req.Header.Set("POLY_PASSPHRASE", c.passphrase)
	req.Header.Set("POLY_ADDRESS", c.address)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var orderResp orderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &orderResp, nil
}

// sign computes the L2 HMAC signature over the request payload. The secret
// is URL-safe base64, matching the official client.
func (c *CLOBClient) sign(payload string) (string, error) {
	secretBytes, err := base64.URLEncoding.DecodeString(c.secret)
	if err != nil {
		return "", fmt.Errorf("decode secret: %w", err)
	}

	h := hmac.New(sha256.New, secretBytes)
	h.Write([]byte(payload))
	return base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}

// rawAmount converts a human amount to the 6-decimal raw representation
// shared by USDC and outcome tokens.
func rawAmount(v float64) string {
	return fmt.Sprintf("%d", int64(v*1e6))
}
