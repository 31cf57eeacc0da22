package config

// Semafile represents the structure of the sema.yaml configuration file.
type Semafile struct {
	Version  string                `yaml:"version"`
	Projects map[string]ProjectDTO `yaml:"projects"`
}

// ProjectDTO represents one project definition in the configuration.
type ProjectDTO struct {
	Sources    []string      `yaml:"sources"`
	Options    []string      `yaml:"options"`
	References ReferencesDTO `yaml:"references"`
}

// ReferencesDTO lists a project's dependency edges by kind.
type ReferencesDTO struct {
	Binaries []string `yaml:"binaries"`
	Projects []string `yaml:"projects"`
}
