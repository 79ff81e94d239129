// Package config provides configuration management for the moodmoment API.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// TokenSecret signs and verifies access tokens. Process-wide, immutable
	// after startup; injected into the token codec rather than read globally.
	TokenSecret string
	// AccessTokenTTL is the lifetime of an issued access token.
	AccessTokenTTL time.Duration
	// ResetTokenTTL is the lifetime of a password reset token.
	ResetTokenTTL time.Duration
	// LegacyTokenVerify disables signature verification during token
	// validation, reproducing the original deployment's behavior of
	// trusting any well-formed, unexpired payload. Off by default; exists
	// only for compatibility testing against the legacy system.
	LegacyTokenVerify bool
	// ExposeResetLink embeds the password reset link in the HTTP response
	// of a reset request. Demo mode only; production delivers the link
	// out-of-band.
	ExposeResetLink bool
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // Port for the HTTP server
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DBPool *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// Helper function to get an optional environment variable parsed as time.Duration.
// time.ParseDuration expects a string like "15m" or "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parseAndValidatePoolSize converts a string value to an integer and clamps it
// between 5 and 100. Appends an error to the errors slice if parsing fails.
func parseAndValidatePoolSize(valueStr string, varName string, errors *[]string) int {
	size, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid pool size for %s: expected integer, got '%s': %v", varName, valueStr, err))
		return 5
	}

	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		size = 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		size = 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)

	poolSize := 10
	if poolSizeStr, exists := os.LookupEnv("DB_POOL_SIZE"); exists {
		poolSize = parseAndValidatePoolSize(poolSizeStr, "DB_POOL_SIZE", &errors)
	}

	dbPool := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration
	tokenSecret := getRequiredEnv("AUTH_TOKEN_SECRET", &errors)
	accessTokenTTL := getOptionalEnvDuration("AUTH_ACCESS_TOKEN_TTL", 24*time.Hour, &errors)
	resetTokenTTL := getOptionalEnvDuration("AUTH_RESET_TOKEN_TTL", time.Hour, &errors)
	legacyVerify := getOptionalEnvBool("AUTH_LEGACY_TOKEN_VERIFY", false, &errors)
	exposeResetLink := getOptionalEnvBool("AUTH_EXPOSE_RESET_LINK", false, &errors)

	authConfig := &AuthConfig{
		TokenSecret:       tokenSecret,
		AccessTokenTTL:    accessTokenTTL,
		ResetTokenTTL:     resetTokenTTL,
		LegacyTokenVerify: legacyVerify,
		ExposeResetLink:   exposeResetLink,
	}

	// Server configuration
	serverPort := getOptionalEnv("PORT", "8080")
	serverConfig := &ServerConfig{
		Port: serverPort,
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DBPool: dbPool,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
