package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultDispatch = Dispatch{
	AvgSpeedKmh:      30,
	ProviderTimeout:  15 * time.Second,
	PlanningTimeout:  45 * time.Second,
	OperationTimeout: 3 * time.Second,
	StaleAfter:       5 * time.Minute,
	MaxConcurrency:   8,
	DepotLat:         -1.286389,
	DepotLng:         36.817223,
}

var defaultRouting = Routing{
	BaseURL:     "https://routes.googleapis.com/directions/v2:computeRoutes",
	Timeout:     15 * time.Second,
	CacheTTL:    2 * time.Minute,
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultKafka = Kafka{
	GroupID:        "service-dispatch",
	OrdersTopic:    "orders",
	PositionsTopic: "courier-positions",
	NotifyTopic:    "order-eta",
}

var defaultAMQP = AMQP{
	Exchange: "dispatch",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       2,
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultSweep = Sweep{
	Schedule: "@every 30s",
	Batch:    20,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultRouting returns the default routing provider settings.
func DefaultRouting() Routing {
	return defaultRouting
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
