package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	signupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homehub_signups_total",
			Help: "Total number of signup attempts.",
		},
		[]string{"service", "result"},
	)

	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homehub_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)

	deviceRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homehub_device_registrations_total",
			Help: "Total number of device registration attempts.",
		},
		[]string{"service", "result"},
	)

	sensorReadingsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_readings_ingested_total",
			Help: "Total number of sensor readings received, by ingestion path.",
		},
		[]string{"service", "source", "result"},
	)
)

// The exported collectors are curried with the service label. Until
// MustRegister runs they carry defaultService and are not exported.
var (
	HTTPRequestsTotal           = httpRequestsTotal.MustCurryWith(serviceLabels(defaultService))
	HTTPRequestDurationSeconds  = httpRequestDurationSeconds.MustCurryWith(serviceLabels(defaultService)).(*prometheus.HistogramVec)
	SignupsTotal                = signupsTotal.MustCurryWith(serviceLabels(defaultService))
	LoginsTotal                 = loginsTotal.MustCurryWith(serviceLabels(defaultService))
	DeviceRegistrationsTotal    = deviceRegistrationsTotal.MustCurryWith(serviceLabels(defaultService))
	SensorReadingsIngestedTotal = sensorReadingsIngestedTotal.MustCurryWith(serviceLabels(defaultService))
)

const defaultService = "homehub"

func serviceLabels(name string) prometheus.Labels {
	return prometheus.Labels{"service": name}
}

// Result label values.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
)

// Source label values for SensorReadingsIngestedTotal.
const (
	SourceOwner = "owner"
	SourceMAC   = "mac"
)

func MustRegister(serviceName string) {
	MustRegisterWith(prometheus.DefaultRegisterer, serviceName)
}

func MustRegisterWith(reg prometheus.Registerer, serviceName string) {
	labels := serviceLabels(serviceName)
	HTTPRequestsTotal = httpRequestsTotal.MustCurryWith(labels)
	HTTPRequestDurationSeconds = httpRequestDurationSeconds.MustCurryWith(labels).(*prometheus.HistogramVec)
	SignupsTotal = signupsTotal.MustCurryWith(labels)
	LoginsTotal = loginsTotal.MustCurryWith(labels)
	DeviceRegistrationsTotal = deviceRegistrationsTotal.MustCurryWith(labels)
	SensorReadingsIngestedTotal = sensorReadingsIngestedTotal.MustCurryWith(labels)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		signupsTotal,
		loginsTotal,
		deviceRegistrationsTotal,
		sensorReadingsIngestedTotal,
	)
}
