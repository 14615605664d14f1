package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения: SUBSTANZ_GAME_RAY_LENGTH и т.д.
const EnvPrefix = "SUBSTANZ"

// Config содержит основные настройки игры
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	Game   GameConfig   `mapstructure:"game"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Log    LogConfig    `mapstructure:"log"`
}

// WindowConfig настройки окна
type WindowConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	Fullscreen bool   `mapstructure:"fullscreen"`
	VSync      bool   `mapstructure:"vsync"`
	TPS        int    `mapstructure:"tps"`
}

// GameConfig настройки геймплея; перечитываются на лету
type GameConfig struct {
	Level              string  `mapstructure:"level"`
	SaveDir            string  `mapstructure:"save_dir"`
	MoveSpeed          float64 `mapstructure:"move_speed"`
	RayLength          float64 `mapstructure:"ray_length"`
	ProjectileSpeed    float64 `mapstructure:"projectile_speed"`
	ProjectileLifespan float64 `mapstructure:"projectile_lifespan"`
	RespawnDelay       float64 `mapstructure:"respawn_delay"`
}

// AudioConfig настройки звука
type AudioConfig struct {
	Muted  bool    `mapstructure:"muted"`
	Volume float64 `mapstructure:"volume"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Substanz",
			VSync:  true,
			TPS:    60,
		},
		Game: GameConfig{
			Level:              "",
			SaveDir:            "saves",
			MoveSpeed:          400,
			RayLength:          4000,
			ProjectileSpeed:    5000,
			ProjectileLifespan: 2,
			RespawnDelay:       1,
		},
		Audio: AudioConfig{
			Volume: 0.5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// values плоский список ключей viper
func (c *Config) values() map[string]any {
	return map[string]any{
		"window.width":             c.Window.Width,
		"window.height":            c.Window.Height,
		"window.title":             c.Window.Title,
		"window.fullscreen":        c.Window.Fullscreen,
		"window.vsync":             c.Window.VSync,
		"window.tps":               c.Window.TPS,
		"game.level":               c.Game.Level,
		"game.save_dir":            c.Game.SaveDir,
		"game.move_speed":          c.Game.MoveSpeed,
		"game.ray_length":          c.Game.RayLength,
		"game.projectile_speed":    c.Game.ProjectileSpeed,
		"game.projectile_lifespan": c.Game.ProjectileLifespan,
		"game.respawn_delay":       c.Game.RespawnDelay,
		"audio.muted":              c.Audio.Muted,
		"audio.volume":             c.Audio.Volume,
		"log.level":                c.Log.Level,
		"log.format":               c.Log.Format,
	}
}

// Loader читает конфигурацию и следит за ее изменениями
type Loader struct {
	v       *viper.Viper
	current atomic.Pointer[Config]
	logger  *slog.Logger
}

// NewLoader читает конфигурацию: значения по умолчанию, затем файл
// (path или substanz.yaml в текущей папке и в $HOME/.substanz), затем
// переменные окружения. Отсутствие файла при пустом path не ошибка.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	for key, value := range DefaultConfig().values() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("substanz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.substanz")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	l := &Loader{v: v, logger: slog.Default()}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.current.Store(cfg)
	return l, nil
}

// Load загружает конфигурацию из файла
func Load(path string) (*Config, error) {
	l, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return l.Current(), nil
}

// SetLogger задает логгер для сообщений о перезагрузке
func (l *Loader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// Current последняя прочитанная конфигурация; безопасно из любой горутины
func (l *Loader) Current() *Config {
	return l.current.Load()
}

// ConfigFile путь к прочитанному файлу или пустая строка
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch следит за файлом и публикует новую конфигурацию. onChange
// вызывается из горутины наблюдателя.
func (l *Loader) Watch(onChange func(*Config)) {
	if l.ConfigFile() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.reload(e, onChange)
	})
	l.v.WatchConfig()
}

func (l *Loader) reload(e fsnotify.Event, onChange func(*Config)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	if err := l.v.ReadInConfig(); err != nil {
		l.logger.Warn("config reload failed", "file", e.Name, "err", err)
		return
	}
	cfg, err := l.decode()
	if err != nil {
		l.logger.Warn("config reload failed", "file", e.Name, "err", err)
		return
	}
	l.current.Store(cfg)
	l.logger.Info("config reloaded", "file", e.Name)
	if onChange != nil {
		onChange(cfg)
	}
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save сохраняет конфигурацию в файл; формат по расширению
func (c *Config) Save(path string) error {
	v := viper.New()
	for key, value := range c.values() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
