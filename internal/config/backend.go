package config

import (
	"strconv"
	"time"
)

// BackendConfig configures the external execution backend client
type BackendConfig struct {
	Url            string
	AuthToken      string
	RequestTimeout time.Duration
}

func NewBackendConfig() *BackendConfig {
	timeoutSec, err := strconv.Atoi(getEnv("BACKEND_REQUEST_TIMEOUT_SEC", "10"))
	if err != nil {
		timeoutSec = 10
	}
	return &BackendConfig{
		Url:            getEnv("BACKEND_URL", "http://localhost:2358"),
		AuthToken:      getEnv("BACKEND_AUTH_TOKEN", ""),
		RequestTimeout: time.Duration(timeoutSec) * time.Second,
	}
}
