package main

import (
	"lookaway/internal/notify"
	"lookaway/internal/storage"
	"lookaway/internal/ui/preferences"

	"github.com/sirupsen/logrus"
)

type commandFlags struct {
	configPath string
	logLevel   string
	httpAddr   string
	autostart  bool
}

// resolveSettings loads the settings file and applies flag overrides. The
// returned settings are usable even when err is non-nil.
func resolveSettings(flags commandFlags) (preferences.Settings, string, error) {
	configPath := flags.configPath
	var err error
	if configPath == "" {
		configPath, err = storage.ConfigPath(appName)
	}

	settings := preferences.DefaultSettings()
	if err == nil {
		settings, err = storage.LoadFrom(configPath)
	}

	if flags.logLevel != "" {
		settings.LogLevel = flags.logLevel
	}
	if flags.httpAddr != "" {
		settings.HTTPAddr = flags.httpAddr
	}
	return settings, configPath, err
}

// senderSet holds the notification channels built from settings.
type senderSet struct {
	sound   *notify.Sound
	chime   *notify.Toggle
	desktop *notify.Toggle
	mqtt    *notify.MQTT
}

func newSenders(settings preferences.Settings, logger *logrus.Logger) *senderSet {
	senders := &senderSet{sound: notify.NewSound(settings.Volume)}
	senders.chime = notify.NewToggle(senders.sound, settings.SoundEnabled)
	senders.desktop = notify.NewToggle(notify.NewDesktop(), settings.DesktopNotifications)

	if settings.MQTTBroker != "" {
		publisher, err := notify.NewMQTT(settings.MQTTBroker, settings.MQTTTopic)
		if err != nil {
			logger.WithError(err).WithField("broker", settings.MQTTBroker).Warn("mqtt disabled")
		} else {
			senders.mqtt = publisher
		}
	}
	return senders
}

func (senders *senderSet) all() []notify.Sender {
	all := []notify.Sender{senders.chime, senders.desktop}
	if senders.mqtt != nil {
		all = append(all, senders.mqtt)
	}
	return all
}

func (senders *senderSet) apply(settings preferences.Settings) {
	senders.sound.SetVolume(settings.Volume)
	senders.chime.SetEnabled(settings.SoundEnabled)
	senders.desktop.SetEnabled(settings.DesktopNotifications)
}

func (senders *senderSet) close() {
	if senders.mqtt != nil {
		_ = senders.mqtt.Close()
	}
}
