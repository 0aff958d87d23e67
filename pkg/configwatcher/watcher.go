package configwatcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/config"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const configFile = "config.yaml"

type ConfigReloader func(cfg *config.Config)

// debounce collapses the burst of events an editor save produces.
var debounce = time.Second

// WatchConfig reloads configDir/config.yaml after it changes and hands the new
// configuration to reloader. It blocks until ctx is done. The directory is
// watched rather than the file so that rename-based saves are seen.
func WatchConfig(ctx context.Context, configDir string, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return err
	}
	if err := watcher.Add(absDir); err != nil {
		return err
	}

	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// 防抖处理
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(absDir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
