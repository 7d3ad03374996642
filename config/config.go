// Package config loads the editor settings and reloads them when the file changes.
//
// On first start the embedded config.json is written to the config directory
// ($XDG_CONFIG_HOME/goditor or ~/.goditor) so it can be edited by hand.
package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/spf13/viper"
)

//go:embed config.json
var defaults embed.FS

const confName = "config.json"

// Line number modes.
const (
	LineNumbersAbsolute = "absolute"
	LineNumbersRelative = "relative"
	LineNumbersOff      = "off"
)

type EditorConfig struct {
	LineNumbers string `mapstructure:"lineNumbers"`
	TrimFiles   bool   `mapstructure:"trimFiles"`
	TabWidth    int    `mapstructure:"tabWidth"`
	StatusLine  bool   `mapstructure:"statusLine"`
}

type Settings struct {
	Editor EditorConfig `mapstructure:"editor"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		Editor: EditorConfig{
			LineNumbers: LineNumbersAbsolute,
			TabWidth:    4,
			StatusLine:  true,
		},
	}
}

type Config struct {
	log  logr.Logger
	v    *viper.Viper
	file string

	mu        sync.RWMutex
	settings  Settings
	listeners []func(Settings)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// DefaultDir is $XDG_CONFIG_HOME/goditor, or ~/.goditor without XDG.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goditor")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".goditor")
}

// NewConfig returns a config reading file, or DefaultDir()/config.json when file
// is empty. Call Init before use.
func NewConfig(log logr.Logger, file string) *Config {
	if file == "" {
		file = filepath.Join(DefaultDir(), confName)
	}
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("json")
	d := Default()
	v.SetDefault("editor.lineNumbers", d.Editor.LineNumbers)
	v.SetDefault("editor.trimFiles", d.Editor.TrimFiles)
	v.SetDefault("editor.tabWidth", d.Editor.TabWidth)
	v.SetDefault("editor.statusLine", d.Editor.StatusLine)

	return &Config{
		log:      log.WithName("config"),
		v:        v,
		file:     file,
		settings: d,
	}
}

func (cfg *Config) File() string {
	return cfg.file
}

// Init writes the default file if there is none and reads it.
func (cfg *Config) Init() error {
	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	return cfg.readConfigIntoMemory()
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.file); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	content, err := fs.ReadFile(defaults, confName)
	if err != nil {
		return fmt.Errorf("reading embedded config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.file), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(cfg.file, content, 0664); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	cfg.log.Info("wrote default config", "file", cfg.file)
	return nil
}

func (cfg *Config) readConfigIntoMemory() error {
	if err := cfg.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", cfg.file, err)
	}
	s := Default()
	if err := cfg.v.Unmarshal(&s); err != nil {
		return fmt.Errorf("decoding config %s: %w", cfg.file, err)
	}
	s = cfg.normalize(s)

	cfg.mu.Lock()
	cfg.settings = s
	listeners := append([]func(Settings){}, cfg.listeners...)
	cfg.mu.Unlock()

	cfg.log.V(1).Info("config loaded", "lineNumbers", s.Editor.LineNumbers, "trimFiles", s.Editor.TrimFiles)
	for _, fn := range listeners {
		fn(s)
	}
	return nil
}

func (cfg *Config) normalize(s Settings) Settings {
	switch s.Editor.LineNumbers {
	case LineNumbersAbsolute, LineNumbersRelative, LineNumbersOff:
	default:
		cfg.log.Info("unknown lineNumbers mode, using absolute", "value", s.Editor.LineNumbers)
		s.Editor.LineNumbers = LineNumbersAbsolute
	}
	if s.Editor.TabWidth < 1 {
		s.Editor.TabWidth = Default().Editor.TabWidth
	}
	return s
}

// Settings returns the current settings.
func (cfg *Config) Settings() Settings {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.settings
}

// OnChange registers fn to run after every successful (re)load. fn runs on the
// watcher goroutine.
func (cfg *Config) OnChange(fn func(Settings)) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.listeners = append(cfg.listeners, fn)
}

// Watch rereads the file whenever it is written. It watches the directory, so
// editors that replace the file on save are picked up too.
func (cfg *Config) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(cfg.file)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}
	cfg.watcher = watcher
	cfg.done = make(chan struct{})
	go cfg.rereadConfigOnFileChange(watcher, cfg.done)
	return nil
}

func (cfg *Config) rereadConfigOnFileChange(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Clean(cfg.file)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := cfg.readConfigIntoMemory(); err != nil {
				// half-written files are common, keep the last good settings
				cfg.log.Error(err, "config reload failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cfg.log.Error(err, "config watcher")
		}
	}
}

// Cleanup stops the watcher, if any.
func (cfg *Config) Cleanup() error {
	if cfg.watcher == nil {
		return nil
	}
	err := cfg.watcher.Close()
	<-cfg.done
	cfg.watcher = nil
	return err
}
