package jobs

import (
	"context"
	"time"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// StockChecker periodically scans inventory for items at or below their
// reorder threshold and notifies the admin room. The scan is read-only
// plus notification; it does not coordinate with concurrent order
// processing.
type StockChecker struct {
	inventory services.InventoryService
	hub       *notify.Hub
	interval  time.Duration
	stopCh    chan struct{}
}

// NewStockChecker creates a checker that scans on the given interval
func NewStockChecker(inventory services.InventoryService, hub *notify.Hub, interval time.Duration) *StockChecker {
	return &StockChecker{
		inventory: inventory,
		hub:       hub,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the background scan loop. An initial scan runs
// immediately.
func (c *StockChecker) Start(ctx context.Context) {
	log.WithField("interval", c.interval).Info("Starting low-stock checker")
	go c.run(ctx)
}

// Stop terminates the scan loop
func (c *StockChecker) Stop() {
	log.Info("Stopping low-stock checker")
	close(c.stopCh)
}

func (c *StockChecker) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.CheckOnce()

	for {
		select {
		case <-ticker.C:
			c.CheckOnce()
		case <-c.stopCh:
			log.Info("Low-stock checker stopped")
			return
		case <-ctx.Done():
			log.Info("Low-stock checker cancelled")
			return
		}
	}
}

// CheckOnce runs a single low-stock scan and publishes the result to the
// admin room when anything is running low
func (c *StockChecker) CheckOnce() {
	items, err := c.inventory.LowStockItems()
	if err != nil {
		log.WithError(err).Error("Low-stock scan failed")
		return
	}
	if len(items) == 0 {
		log.Debug("Low-stock scan found nothing")
		return
	}

	for _, item := range items {
		log.WithFields(logrus.Fields{
			"item":      item.Name,
			"item_type": item.ItemType,
			"stock":     item.StockQuantity,
			"threshold": item.ThresholdQuantity,
		}).Warn("Inventory item low on stock")
	}

	c.hub.Publish(notify.AdminRoom, notify.EventLowStock, items)
}
