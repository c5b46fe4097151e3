package utils

import "time"

// LoggerContextKey is where middleware stores the request-scoped logger.
const LoggerContextKey = "logger"

// HealthCheckInterval is how often StartHealthMonitor pings dependencies.
const HealthCheckInterval = 30 * time.Second

// RedisPingTimeout bounds the connectivity check made when a client is opened.
const RedisPingTimeout = 2 * time.Second
