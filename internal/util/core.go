package util

import (
	"errors"
	"time"

	"github.com/goombaio/namegenerator"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dmaloney/lanprobe/internal/config"
	"github.com/dmaloney/lanprobe/internal/core"
	"github.com/dmaloney/lanprobe/internal/exception"
)

// getSqliteDbConnection creates and returns a sqlite database connection
func getSqliteDbConnection(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&config.ConfigModel{}); err != nil {
		return nil, err
	}

	return db, nil
}

// getDefaultConfig creates and returns a default configuration targeting
// the detected local network
func getDefaultConfig(defaultCIDR string) *config.Config {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	return &config.Config{
		Name:    nameGenerator.Generate(),
		Targets: []string{defaultCIDR},
		Ports:   config.DefaultPorts(),
	}
}

// CreateNewAppCore creates and returns a new instance of *core.Core
func CreateNewAppCore(defaultCIDR string) (*core.Core, error) {
	dbFile := viper.Get("database-file").(string)

	db, err := getSqliteDbConnection(dbFile)

	if err != nil {
		return nil, err
	}

	configRepo := config.NewSqliteRepo(db)
	configService := config.NewConfigService(configRepo)

	conf, err := configService.LastLoaded()

	if err != nil {
		if errors.Is(err, exception.ErrRecordNotFound) {
			conf = getDefaultConfig(defaultCIDR)
			conf, err = configService.Create(conf)

			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return core.New(conf, configService, core.DefaultProberFactory), nil
}
