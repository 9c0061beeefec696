package config

import "net"

type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	Database DatabaseConfig `env-prefix:"DB_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
	Debug    bool   `env:"DEBUG" env-default:"false"`
}

type HTTPConfig struct {
	Addr         string `env:"ADDR" env-default:":8080"`
	TemplatesDir string `env:"TEMPLATES_DIR" env-default:"./web/templates"`
	StaticDir    string `env:"STATIC_DIR" env-default:"./web/static"`
}

type DatabaseConfig struct {
	Port     string `env:"PORT" env-default:"5432"`
	Host     string `env:"HOST" env-default:"localhost"`
	Name     string `env:"NAME" env-default:"notesapp"`
	User     string `env:"USER" env-default:"notesapp"`
	Password string `env:"PASSWORD"`
	PoolMin  int32  `env:"POOL_MIN" env-default:"0"`
	PoolMax  int32  `env:"POOL_MAX" env-default:"5"`
}

// Addr joins host and port into the hostport form pkg/database expects.
func (d DatabaseConfig) Addr() string {
	return net.JoinHostPort(d.Host, d.Port)
}
