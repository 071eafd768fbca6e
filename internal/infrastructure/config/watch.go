package config

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/savory/api/pkg/logger"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher follows the config file and applies log level changes at runtime.
// Every other setting still needs a restart.
type Watcher struct {
	v        *viper.Viper
	level    zap.AtomicLevel
	logger   *zap.Logger
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the same file Load would read.
func NewWatcher(configPath string, level zap.AtomicLevel, log *zap.Logger) *Watcher {
	return &Watcher{
		v:        newViper(configPath),
		level:    level,
		logger:   log.Named("config-watcher"),
		debounce: defaultDebounce,
	}
}

// Start begins watching. It reports false when there is no config file.
func (w *Watcher) Start() (bool, error) {
	if err := w.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		return false, err
	}

	w.v.OnConfigChange(w.handleEvent)
	w.v.WatchConfig()

	w.logger.Info("Watching config file", zap.String("file", w.v.ConfigFileUsed()))
	return true, nil
}

// Stop cancels a pending reload.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	// Skip editor swap files
	if strings.HasSuffix(event.Name, "~") || strings.HasSuffix(event.Name, ".tmp") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Editors often write twice in quick succession
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.apply)
}

func (w *Watcher) apply() {
	next := logger.ParseLevel(w.v.GetString("app.log_level"))
	current := w.level.Level()
	if next == current {
		return
	}
	w.level.SetLevel(next)
	w.logger.Info("Log level changed",
		zap.String("from", current.String()),
		zap.String("to", next.String()),
	)
}
