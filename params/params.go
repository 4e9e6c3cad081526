package params

import "time"

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	CSRFTokenExpiration = 1 * time.Hour
	DeviceCookieName    = "device_id"
	DeviceCookieMaxAge  = 365 * 24 * time.Hour
	ViewIdleTimeout     = 30 * time.Minute
	ViewSweepInterval   = 5 * time.Minute
)

const (
	DefaultLoginDelay    = 1500 * time.Millisecond
	DefaultRegisterDelay = 2000 * time.Millisecond
	DefaultTokenSecret   = "cas-portal-simulated-secret"
	DefaultTokenTTL      = 24 * time.Hour
)
