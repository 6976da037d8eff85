package ui

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/dmaloney/lanprobe/internal/logger"
	"github.com/dmaloney/lanprobe/internal/util"
)

var originalStdout = os.Stdout
var originalStderr = os.Stderr

func restoreStdout() {
	os.Stdout = originalStdout
	os.Stderr = originalStderr
}

// UI wrapper around the tview application
type UI struct {
	view *view
}

// NewUI returns a new UI
func NewUI() *UI {
	return &UI{}
}

// Launch detects the local network, builds the app core, and hands the
// terminal to the tview application until the user quits
func (u *UI) Launch() error {
	log := logger.New()

	level := zerolog.GlobalLevel()

	if level != zerolog.Disabled {
		logFile, ok := viper.Get("log-file").(string)

		if !ok || logFile == "" {
			log.Error().Err(
				fmt.Errorf("invalid log file path: %s", logFile),
			)
			log.Info().Msg("disabling logs")
			zerolog.SetGlobalLevel(zerolog.Disabled)
		} else {
			if err := logger.GlobalSetLogFile(logFile); err != nil {
				log.Error().Err(err)
				log.Info().Msg("disabling logs")
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}
		}
	}

	netInfo, err := util.GetNetworkInfo()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to get default network info")
	}

	appCore, err := util.CreateNewAppCore(netInfo.Cidr)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create app core")
	}

	u.view = newView(netInfo.UserIP.String(), appCore)

	// the UI owns the terminal while running
	os.Stdout, _ = os.Open(os.DevNull)
	os.Stderr, _ = os.Open(os.DevNull)

	defer restoreStdout()

	return u.view.run()
}
