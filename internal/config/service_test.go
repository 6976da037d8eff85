package config_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dmaloney/lanprobe/internal/config"
	mock_config "github.com/dmaloney/lanprobe/internal/mock/config"
	"github.com/dmaloney/lanprobe/internal/probe"
	"github.com/dmaloney/lanprobe/internal/scan"
)

func TestConfigService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	t.Run("fills in defaults on create", func(st *testing.T) {
		mockRepo := mock_config.NewMockRepo(ctrl)
		service := config.NewConfigService(mockRepo)

		mockRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(conf *config.Config) (*config.Config, error) {
				return conf, nil
			})

		created, err := service.Create(&config.Config{Name: "defaults"})

		assert.NoError(st, err)
		assert.Equal(st, config.DefaultPorts(), created.Ports)
		assert.Equal(st, config.DefaultTimeoutMs, created.TimeoutMs)
		assert.Equal(st, scan.DefaultConcurrency, created.Concurrency)
		assert.Equal(st, probe.StrategyConnect, created.Strategy)
	})

	t.Run("dedupes and sorts ports", func(st *testing.T) {
		mockRepo := mock_config.NewMockRepo(ctrl)
		service := config.NewConfigService(mockRepo)

		mockRepo.EXPECT().
			Update(gomock.Any()).
			DoAndReturn(func(conf *config.Config) (*config.Config, error) {
				return conf, nil
			})

		updated, err := service.Update(&config.Config{
			ID:   1,
			Name: "ports",
			Ports: []probe.Port{
				{Number: 443, Label: "HTTPS", Scheme: probe.SchemeTLS},
				{Number: 22, Label: "SSH", Scheme: probe.SchemePlain},
				{Number: 443, Label: "HTTPS", Scheme: probe.SchemeTLS},
				{Number: 80, Label: "HTTP", Scheme: probe.SchemePlain},
			},
		})

		assert.NoError(st, err)
		assert.Equal(st, 3, len(updated.Ports))
		assert.Equal(st, uint16(22), updated.Ports[0].Number)
		assert.Equal(st, uint16(80), updated.Ports[1].Number)
		assert.Equal(st, uint16(443), updated.Ports[2].Number)
	})

	t.Run("clamps the probe timeout to its bounds", func(st *testing.T) {
		mockRepo := mock_config.NewMockRepo(ctrl)
		service := config.NewConfigService(mockRepo)

		mockRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(conf *config.Config) (*config.Config, error) {
				return conf, nil
			}).
			Times(2)

		low, err := service.Create(&config.Config{Name: "low", TimeoutMs: 5})

		assert.NoError(st, err)
		assert.Equal(st, config.MinTimeoutMs, low.TimeoutMs)

		high, err := service.Create(&config.Config{Name: "high", TimeoutMs: 60000})

		assert.NoError(st, err)
		assert.Equal(st, config.MaxTimeoutMs, high.TimeoutMs)
	})

	t.Run("delegates reads and deletes to the repo", func(st *testing.T) {
		mockRepo := mock_config.NewMockRepo(ctrl)
		service := config.NewConfigService(mockRepo)

		conf := testConfig("delegate")

		mockRepo.EXPECT().Get("delegate").Return(conf, nil)
		mockRepo.EXPECT().GetAll().Return([]*config.Config{conf}, nil)
		mockRepo.EXPECT().Delete("delegate").Return(nil)
		mockRepo.EXPECT().SetLastLoaded("delegate").Return(nil)
		mockRepo.EXPECT().LastLoaded().Return(conf, nil)

		found, err := service.Get("delegate")

		assert.NoError(st, err)
		assert.Equal(st, conf, found)

		all, err := service.GetAll()

		assert.NoError(st, err)
		assert.Equal(st, 1, len(all))

		assert.NoError(st, service.Delete("delegate"))
		assert.NoError(st, service.SetLastLoaded("delegate"))

		last, err := service.LastLoaded()

		assert.NoError(st, err)
		assert.Equal(st, conf, last)
	})
}
