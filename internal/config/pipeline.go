package config

import (
	"strconv"
	"time"
)

// PipelineConfig configures the submission pipeline thresholds and risk
// rule weights. The defaults mirror the tuning the service launched with;
// none of the numbers are load-bearing beyond being sane defaults.
type PipelineConfig struct {
	MaxCodeLength     int
	RejectThreshold   int
	PatternPoints     int
	ObfuscationPoints int
	FileIOPoints      int
	ExecTimeout       time.Duration
	CatalogSampleSize int
}

func NewPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		MaxCodeLength:     getIntEnv("MAX_CODE_LENGTH", 8000),
		RejectThreshold:   getIntEnv("RISK_REJECT_THRESHOLD", 50),
		PatternPoints:     getIntEnv("RISK_PATTERN_POINTS", 30),
		ObfuscationPoints: getIntEnv("RISK_OBFUSCATION_POINTS", 20),
		FileIOPoints:      getIntEnv("RISK_FILE_IO_POINTS", 10),
		ExecTimeout:       time.Duration(getIntEnv("EXEC_TIMEOUT_MS", 10000)) * time.Millisecond,
		CatalogSampleSize: getIntEnv("CATALOG_SAMPLE_SIZE", 10),
	}
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
