package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 服务器运行指标，经 /metrics（promhttp）暴露，用于监控与压测观察
var (
	connectedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bossarena_connected_players",
		Help: "Current number of registered player connections.",
	})
	connectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bossarena_connections_total",
		Help: "Total accepted and registered connections.",
	})
	rejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bossarena_rejections_total",
		Help: "Connections rejected because the server was full.",
	})
	disconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bossarena_disconnects_total",
		Help: "Connections removed after a receive or send failure.",
	})
	inboundMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bossarena_inbound_messages_total",
		Help: "Inbound messages dispatched by kind.",
	}, []string{"kind"})
	protocolErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bossarena_protocol_errors_total",
		Help: "Malformed inbound messages dropped by the router.",
	})
	broadcastDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bossarena_broadcast_dropped_total",
		Help: "Snapshot frames dropped because a client send queue was full.",
	})
	tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bossarena_tick_duration_seconds",
		Help:    "Wall time spent per simulation tick (advance + broadcast).",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
	broadcastFanout = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bossarena_broadcast_fanout",
		Help:    "Number of connections each snapshot was fanned out to.",
		Buckets: prometheus.LinearBuckets(0, 1, 16),
	})
)

func init() {
	prometheus.MustRegister(
		connectedPlayers,
		connectionsTotal,
		rejectionsTotal,
		disconnectsTotal,
		inboundMessages,
		protocolErrors,
		broadcastDropped,
		tickDuration,
		broadcastFanout,
	)
}
