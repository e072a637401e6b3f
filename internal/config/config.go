package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the optional settings file looked up in the config directory.
const (
	FileName  = "starstrike"
	EnvPrefix = "STARSTRIKE"
	DirEnv    = EnvPrefix + "_CONFIG_DIR"
)

// Settings is the typed view of the loaded configuration.
type Settings struct {
	LogLevel string        `mapstructure:"logLevel"`
	LogFile  string        `mapstructure:"logFile"`
	Storage  StorageConfig `mapstructure:"storage"`
	Audio    AudioConfig   `mapstructure:"audio"`
	SSH      SSHConfig     `mapstructure:"ssh"`
	Web      WebConfig     `mapstructure:"web"`
	Game     GameConfig    `mapstructure:"game"`
}

// StorageConfig locates the high-score database. An empty path keeps
// scores in memory for the life of the process.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type SSHConfig struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	HostKeyPath string `mapstructure:"hostKeyPath"`
}

type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"sshDisplayHost"`
}

type GameConfig struct {
	FPS     int    `mapstructure:"fps"`
	Profile string `mapstructure:"profile"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("storage.path", "starstrike.db")

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.8)

	viper.SetDefault("ssh.host", "0.0.0.0")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.hostKeyPath", ".ssh/id_ed25519")

	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", "8080")
	viper.SetDefault("web.sshDisplayHost", "localhost")

	viper.SetDefault("game.fps", 60)
	viper.SetDefault("game.profile", "local")
}

// Load sets defaults, reads starstrike.json from configDir if present and
// enables STARSTRIKE_* environment overrides. An empty configDir falls back
// to $STARSTRIKE_CONFIG_DIR, then the working directory.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AllowEmptyEnv(true)
	viper.AutomaticEnv()

	if configDir == "" {
		configDir = GetEnv(DirEnv, ".")
	}
	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// BindFlags lets command-line flags override the keys they are named after.
// Flags use the dotted key as their name, e.g. --ssh.port.
func BindFlags(fs *pflag.FlagSet) error {
	if err := viper.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Get decodes the current configuration.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if s.Game.FPS <= 0 {
		s.Game.FPS = 60
	}
	return s, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
