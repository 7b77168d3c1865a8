package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameNotifications = "notifications_total"
	LabelResult       = "result"

	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

var Notifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameNotifications,
		Help:      "Notification delivery attempts by result",
		Namespace: Namespace,
	},
	[]string{LabelResult},
)
