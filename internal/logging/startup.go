package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects server identity, configured models, feature flags,
// and other non-sensitive configuration, then emits a single structured
// zerolog event summarising the startup state. One event makes it easy to
// see exactly how the server was configured when reading logs later.
type StartupLogger struct {
	name         string
	version      string
	initDuration time.Duration

	models   map[string]string
	features map[string]bool
	config   map[string]string
}

// NewStartupLogger creates a StartupLogger for the given server name.
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:     name,
		models:   make(map[string]string),
		features: make(map[string]bool),
		config:   make(map[string]string),
	}
}

// Version sets the server version reported at startup.
func (s *StartupLogger) Version(v string) *StartupLogger {
	s.version = v
	return s
}

// Model registers a generation model used by the server (e.g. "content",
// "image", "video").
func (s *StartupLogger) Model(label, name string) *StartupLogger {
	s.models[label] = name
	return s
}

// Feature registers a boolean feature flag (e.g. "http", "video").
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// Config registers a non-sensitive configuration key-value pair.
// Never register API keys or other secrets here.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long startup wiring took to complete.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// EnvOrDefault returns the value of the named environment variable, or
// defaultVal if the variable is empty or unset.
func EnvOrDefault(envVar, defaultVal string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultVal
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	serverDict := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv("CAMPAIGN_LOG_LEVEL"))

	if s.version != "" {
		serverDict = serverDict.Str("version", s.version)
	}

	evt = evt.Dict("server", serverDict)

	if len(s.models) > 0 {
		evt = evt.Dict("models", dictFromMap(s.models))
	}

	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}

	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}

	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Server startup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
