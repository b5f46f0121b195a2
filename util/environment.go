package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type cardroomEnvironment struct {
	PersistMethod string
	RedisHost     string
	RedisPort     string
	RedisPW       string
	RedisDB       string
	NatsURL       string
	HTTPPort      string
	ActionTimeout string
	LogLevel      string
}

// Env is a helper object for accessing environment variables.
var Env = &cardroomEnvironment{
	PersistMethod: "PERSIST_METHOD",
	RedisHost:     "REDIS_HOST",
	RedisPort:     "REDIS_PORT",
	RedisPW:       "REDIS_PW",
	RedisDB:       "REDIS_DB",
	NatsURL:       "NATS_URL",
	HTTPPort:      "HTTP_PORT",
	ActionTimeout: "ACTION_TIMEOUT",
	LogLevel:      "LOG_LEVEL",
}

// GetPersistMethod returns the snapshot store backend ("memory" or "redis").
func (c *cardroomEnvironment) GetPersistMethod() string {
	method := os.Getenv(c.PersistMethod)
	if method == "" {
		return "memory"
	}
	return method
}

func (c *cardroomEnvironment) GetRedisHost() string {
	host := os.Getenv(c.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (c *cardroomEnvironment) GetRedisPort() int {
	portStr := os.Getenv(c.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (c *cardroomEnvironment) GetRedisPW() string {
	pw := os.Getenv(c.RedisPW)
	return pw
}

func (c *cardroomEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(c.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (c *cardroomEnvironment) GetNatsURL() string {
	url := os.Getenv(c.NatsURL)
	if url == "" {
		return "nats://localhost:4222"
	}
	return url
}

func (c *cardroomEnvironment) GetHTTPPort() int {
	portStr := os.Getenv(c.HTTPPort)
	if portStr == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid HTTP port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

// GetActionTimeoutSec returns the number of seconds a player gets to act
// before the timer substitutes a default action.
func (c *cardroomEnvironment) GetActionTimeoutSec() int {
	timeoutStr := os.Getenv(c.ActionTimeout)
	if timeoutStr == "" {
		return 30
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid action timeout %s", timeoutStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return timeout
}

func (c *cardroomEnvironment) GetZeroLogLogLevel() zerolog.Level {
	levelStr := os.Getenv(c.LogLevel)
	switch levelStr {
	case "":
		return zerolog.InfoLevel
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		msg := fmt.Sprintf("Invalid log level %s", levelStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
}
