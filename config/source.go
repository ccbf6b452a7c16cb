package config

import (
	"os"

	"github.com/joho/godotenv"
)

// PropertySource supplies raw property values to an Environment.
type PropertySource interface {
	// Name identifies the source in diagnostics.
	Name() string
	// Lookup returns the value for key and whether the source has it.
	Lookup(key string) (string, bool)
}

// MapSource serves properties from an in-memory map.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource wraps a map as a property source. The map is used as given,
// not copied.
func NewMapSource(name string, values map[string]string) *MapSource {
	return &MapSource{name: name, values: values}
}

func (s *MapSource) Name() string { return s.name }

func (s *MapSource) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// EnvSource serves properties from the process environment.
type EnvSource struct{}

func (EnvSource) Name() string { return "env" }

func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// DotenvSource serves properties from one or more dotenv files.
type DotenvSource struct {
	files  []string
	values map[string]string
}

// NewDotenvSource reads the given dotenv files, defaulting to ".env".
// Missing files are skipped.
func NewDotenvSource(files ...string) *DotenvSource {
	if len(files) == 0 {
		files = []string{".env"}
	}
	values := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range m {
			if _, dup := values[k]; !dup {
				values[k] = v
			}
		}
	}
	return &DotenvSource{files: files, values: values}
}

func (s *DotenvSource) Name() string { return "dotenv" }

func (s *DotenvSource) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}
