package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "focusflow"

// Metrics owns a private registry so that tests and multiple apps in one
// process do not collide on the default one.
type Metrics struct {
	registry      *prometheus.Registry
	sessions      *prometheus.CounterVec
	passes        *prometheus.CounterVec
	coins         *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Focus sessions resolved, by outcome.",
		}, []string{"outcome"}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_redeemed_total",
			Help:      "Break passes consumed to forgive a distraction.",
		}, []string{"kind"}),
		coins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coins_total",
			Help:      "Coins credited or debited by the engine and the store.",
		}, []string{"direction"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Outbound notification attempts, by sink and result.",
		}, []string{"sink", "result"}),
	}
	m.registry.MustRegister(m.sessions, m.passes, m.coins, m.notifications)
	return m
}

func (m *Metrics) SessionResolved(outcome string) {
	m.sessions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PassRedeemed(kind string) {
	m.passes.WithLabelValues(kind).Inc()
}

func (m *Metrics) CoinsMoved(direction string, amount int64) {
	if amount <= 0 {
		return
	}
	m.coins.WithLabelValues(direction).Add(float64(amount))
}

func (m *Metrics) NotificationSent(sink string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notifications.WithLabelValues(sink, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
