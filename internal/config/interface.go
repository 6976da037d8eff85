package config

//go:generate mockgen -destination=../mock/config/mock_config.go -package=mock_config . Repo,Service

// Repo interface representing access to stored configs
type Repo interface {
	Get(name string) (*Config, error)
	GetAll() ([]*Config, error)
	Create(conf *Config) (*Config, error)
	Update(conf *Config) (*Config, error)
	Delete(name string) error
	SetLastLoaded(name string) error
	LastLoaded() (*Config, error)
}

// Service interface for manipulating configurations
type Service interface {
	Get(name string) (*Config, error)
	GetAll() ([]*Config, error)
	Create(conf *Config) (*Config, error)
	Update(conf *Config) (*Config, error)
	Delete(name string) error
	SetLastLoaded(name string) error
	LastLoaded() (*Config, error)
}
