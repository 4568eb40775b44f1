package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{db: db, logger: cfg.Logger}, nil
}

// StoreSignal inserts an emitted signal.
func (p *PostgresStorage) StoreSignal(ctx context.Context, sig *types.Signal) error {
	query := `
		INSERT INTO signals (
			id, market_id, token_id, side, estimated_prob, market_price,
			edge, confidence, strategy_name, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		uuid.NewString(),
		sig.MarketID,
		sig.TokenID,
		string(sig.Side),
		sig.EstimatedProb,
		sig.MarketPrice,
		sig.Edge(),
		sig.Confidence,
		sig.StrategyName,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}

	p.logger.Debug("signal-stored",
		zap.String("market-id", sig.MarketID),
		zap.String("strategy", sig.StrategyName))

	return nil
}

// StoreOrder inserts a placed order.
func (p *PostgresStorage) StoreOrder(ctx context.Context, order *types.Order) error {
	query := `
		INSERT INTO orders (
			order_id, market_id, token_id, side, price, size,
			total_cost, status, strategy_name, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		order.OrderID,
		order.MarketID,
		order.TokenID,
		string(order.Side),
		order.Price,
		order.Size,
		order.TotalCost(),
		order.Status,
		order.StrategyName,
		order.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	p.logger.Debug("order-stored",
		zap.String("order-id", order.OrderID),
		zap.String("strategy", order.StrategyName))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
