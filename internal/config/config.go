package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN"`
	HTTP        HTTPConfig        `yaml:"http"`
	EstateAPI   EstateAPIConfig   `yaml:"estate_api"`
	Assets      AssetsConfig      `yaml:"assets"`
	Editor      EditorConfig      `yaml:"editor"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
}

type HTTPConfig struct {
	Host          string        `yaml:"host"`
	Port          string        `yaml:"port" env-default:"8080"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env-default:"15s"`
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	AllowOrigins  []string      `yaml:"allow_origins" env-default:"http://localhost:3000"`
}

type EstateAPIConfig struct {
	BaseURL string        `yaml:"base_url" env:"ESTATE_API_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type AssetsConfig struct {
	BaseURL string `yaml:"base_url" env:"ASSETS_BASE_URL"`
}

type EditorConfig struct {
	SessionTTL    time.Duration `yaml:"session_ttl" env-default:"30m"`
	SubmitTimeout time.Duration `yaml:"submit_timeout" env-default:"60s"`
	MaxImages     int           `yaml:"max_images" env-default:"5"`
	MaxImageSize  int64         `yaml:"max_image_size" env-default:"5242880"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
}

type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"`
	CatalogTTL    time.Duration `yaml:"catalog_ttl" env-default:"10m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// .env опционален, переменные окружения перекрывают yaml
	_ = godotenv.Load()

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
