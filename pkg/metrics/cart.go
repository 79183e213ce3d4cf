package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics counts cart mutations and completed orders.
type CartMetrics struct {
	itemUpdates     *prometheus.CounterVec
	ordersCompleted prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	itemUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_item_updates_total",
		Help: "Cart item updates by action and outcome.",
	}, []string{"action", "outcome"})
	ordersCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Orders moved from open to complete.",
	})
	reg.MustRegister(itemUpdates, ordersCompleted)
	return &CartMetrics{itemUpdates: itemUpdates, ordersCompleted: ordersCompleted}
}

// IncItemUpdate counts one update-item call. outcome is "ok" or "error".
func (c *CartMetrics) IncItemUpdate(action, outcome string) {
	if c == nil || c.itemUpdates == nil {
		return
	}
	c.itemUpdates.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// IncOrderCompleted counts a completed order.
func (c *CartMetrics) IncOrderCompleted() {
	if c == nil || c.ordersCompleted == nil {
		return
	}
	c.ordersCompleted.Inc()
}
