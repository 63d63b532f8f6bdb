package appconf

import "strings"

// Environment is the named operating environment for the application.
type Environment int

const (
	Development Environment = iota
	Test
	Staging
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value onto an Environment.
// Unknown values fall back to development.
func EnvFlagToEnvironment(flag string) Environment {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "test":
		return Test
	case "staging":
		return Staging
	case "production":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the application: the
// network port the server listens on, the operating environment, the set
// of accepted API keys and the per-key request rate limit.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	Verbose   bool
	LogFile   string
}
