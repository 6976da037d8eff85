package config

import (
	"sort"

	"github.com/dmaloney/lanprobe/internal/probe"
	"github.com/dmaloney/lanprobe/internal/scan"
)

// ConfigService normalizes configs on their way into the repo: the port
// set is deduped and kept sorted ascending, the probe timeout is clamped
// to its recommended bounds, and missing tuning values get defaults.
type ConfigService struct {
	repo Repo
}

// NewConfigService returns a new ConfigService
func NewConfigService(repo Repo) *ConfigService {
	return &ConfigService{repo: repo}
}

func (s *ConfigService) Get(name string) (*Config, error) {
	return s.repo.Get(name)
}

func (s *ConfigService) GetAll() ([]*Config, error) {
	return s.repo.GetAll()
}

func (s *ConfigService) Create(conf *Config) (*Config, error) {
	normalize(conf)
	return s.repo.Create(conf)
}

func (s *ConfigService) Update(conf *Config) (*Config, error) {
	normalize(conf)
	return s.repo.Update(conf)
}

func (s *ConfigService) Delete(name string) error {
	return s.repo.Delete(name)
}

func (s *ConfigService) SetLastLoaded(name string) error {
	return s.repo.SetLastLoaded(name)
}

func (s *ConfigService) LastLoaded() (*Config, error) {
	return s.repo.LastLoaded()
}

func normalize(conf *Config) {
	if len(conf.Ports) == 0 {
		conf.Ports = DefaultPorts()
	}

	byNumber := map[uint16]probe.Port{}

	for _, p := range conf.Ports {
		byNumber[p.Number] = p
	}

	ports := make([]probe.Port, 0, len(byNumber))

	for _, p := range byNumber {
		ports = append(ports, p)
	}

	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Number < ports[j].Number
	})

	conf.Ports = ports

	if conf.TimeoutMs == 0 {
		conf.TimeoutMs = DefaultTimeoutMs
	}

	if conf.TimeoutMs < MinTimeoutMs {
		conf.TimeoutMs = MinTimeoutMs
	}

	if conf.TimeoutMs > MaxTimeoutMs {
		conf.TimeoutMs = MaxTimeoutMs
	}

	if conf.Concurrency <= 0 {
		conf.Concurrency = scan.DefaultConcurrency
	}

	if conf.Strategy == "" {
		conf.Strategy = probe.StrategyConnect
	}
}
