package config

import (
	"os"
	"strings"
)

// Environment selects where configuration is read from.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV (or APP_ENV). CI=true overrides both.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	switch Environment(strings.ToLower(strings.TrimSpace(env))) {
	case Production, "prod":
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// UsesDotenv reports whether a .env file is consulted before the process environment.
func (e Environment) UsesDotenv() bool {
	return e == Development || e == Test
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
