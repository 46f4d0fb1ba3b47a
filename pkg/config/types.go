package config

import (
	"github.com/getmockd/mocksauce/pkg/sauce"
)

// DefaultAddress is the listen address used when none is configured.
const DefaultAddress = ":4280"

// ProjectConfig is the root of a project file.
type ProjectConfig struct {
	Server     ServerConfig  `yaml:"server" json:"server"`
	Logging    LoggingConfig `yaml:"logging" json:"logging"`
	Serializer sauce.Config  `yaml:"serializer" json:"serializer"`
	Routes     []RouteConfig `yaml:"routes" json:"routes"`

	// BaseDir is the directory relative fixture paths resolve against.
	BaseDir string `yaml:"-" json:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// File additionally writes JSON logs to this path.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// RouteConfig maps a URL path to a fixture document.
type RouteConfig struct {
	// Path is the collection URL, e.g. /api/posts.
	Path string `yaml:"path" json:"path"`
	// Fixture is a single document file.
	Fixture string `yaml:"fixture,omitempty" json:"fixture,omitempty"`
	// Files is a glob (** supported) whose documents are merged.
	Files string `yaml:"files,omitempty" json:"files,omitempty"`
	// Hook is an optional expression that filters collection members.
	Hook string `yaml:"hook,omitempty" json:"hook,omitempty"`
	// Serializer overrides the project serializer settings for this route.
	Serializer *sauce.Config `yaml:"serializer,omitempty" json:"serializer,omitempty"`
}

// Pattern returns the route's fixture path or glob.
func (r RouteConfig) Pattern() string {
	if r.Fixture != "" {
		return r.Fixture
	}
	return r.Files
}

// SerializerConfig returns the effective serializer settings for a route.
func (c *ProjectConfig) SerializerConfig(route RouteConfig) sauce.Config {
	if route.Serializer == nil {
		return c.Serializer
	}
	return c.Serializer.Merge(*route.Serializer)
}

func (c *ProjectConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
