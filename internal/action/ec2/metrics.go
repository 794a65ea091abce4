package ec2

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tombee/ec2actions/internal/operation/transport"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

var (
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ec2actions_operation_duration_seconds",
			Help:    "Duration of EC2 action operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "return_code"},
	)

	operationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ec2actions_operation_results_total",
			Help: "Total EC2 action results by operation and return code",
		},
		[]string{"operation", "return_code"},
	)

	awsErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ec2actions_aws_errors_total",
			Help: "Total AWS error responses by error code",
		},
		[]string{"code"},
	)

	transportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ec2actions_transport_errors_total",
			Help: "Total failed AWS exchanges by error type",
		},
		[]string{"error_type"},
	)
)

// recordMetrics records metrics for one invocation
func recordMetrics(operation, returnCode string, duration float64, err error) {
	operationDuration.WithLabelValues(operation, returnCode).Observe(duration)
	operationResults.WithLabelValues(operation, returnCode).Inc()

	var te *transport.TransportError
	if err == nil || !ec2errors.As(err, &te) {
		return
	}
	transportErrors.WithLabelValues(string(te.Type)).Inc()
	if te.Code != "" {
		awsErrors.WithLabelValues(te.Code).Inc()
	}
}
