package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	OrderCreatedSubject   = "order.created"
	CatalogChangedSubject = "catalog.changed"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// CatalogChangedPayload announces a committed catalog write so other
// consumers (search indexers, feeds) can refresh.
type CatalogChangedPayload struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id"`
}

func NewNATSPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger.Named("NATSPublisher")}, nil
}

func (p *Publisher) PublishOrderCreated(_ context.Context, order *entity.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		p.logger.Error("Failed to marshal order for NATS publishing",
			zap.Error(err), zap.String("order_id", order.ID.Hex()))
		return err
	}
	if err := p.nc.Publish(OrderCreatedSubject, data); err != nil {
		p.logger.Error("Failed to publish order created event",
			zap.Error(err), zap.String("order_id", order.ID.Hex()))
		return err
	}
	p.logger.Debug("Order created event published", zap.String("order_id", order.ID.Hex()))
	return nil
}

func (p *Publisher) PublishCatalogChanged(_ context.Context, resource, action, id string) error {
	data, err := json.Marshal(CatalogChangedPayload{Resource: resource, Action: action, ID: id})
	if err != nil {
		return err
	}
	if err := p.nc.Publish(CatalogChangedSubject, data); err != nil {
		p.logger.Error("Failed to publish catalog changed event",
			zap.Error(err), zap.String("resource", resource), zap.String("id", id))
		return err
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
