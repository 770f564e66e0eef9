package config

import (
	"fmt"
	"path/filepath"

	"tradedesk/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch reloads path whenever the file changes and hands the validated result to
// onChange. Invalid edits are logged and skipped; the previous config stays in force.
func Watch(path string, onChange func(*Config)) error {
	if onChange == nil {
		return fmt.Errorf("config watch requires a callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigFile(abs)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config for watch failed: %w", err)
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
			return
		}
		cfg, err := Load(abs)
		if err != nil {
			logger.Errorf("[config] reload failed (%s): %v", evt.Name, err)
			return
		}
		logger.Infof("[config] reloaded %s", evt.Name)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
