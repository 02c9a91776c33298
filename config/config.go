package config

import (
	"os"
	"sync"

	"dcim/logutils"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Postgres struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		DBName   string `yaml:"dbname"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
		TimeZone string `yaml:"TimeZone"`
	} `yaml:"postgres"`
	Auth struct {
		TokenSecret            string `yaml:"tokenSecret"`
		AccessTokenExpiryHour  int    `yaml:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `yaml:"refreshTokenExpiryHour"`
	} `yaml:"auth"`
	SMTP struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		FromEmail string `yaml:"fromEmail"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		UseSSL    bool   `yaml:"useSSL"`
		UseTLS    bool   `yaml:"useTLS"`
		Timeout   int    `yaml:"timeout"`
	} `yaml:"smtp"`
	Upload struct {
		// Always-notified recipients for bulk upload reports, in addition
		// to the uploading user.
		ReportRecipients []string `yaml:"reportRecipients"`
	} `yaml:"upload"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

// initConfig reads the configuration file. The path can be overridden with
// the CONFIG_PATH environment variable; the default is read from the
// ConfigMap mount at ./etc/config.yaml.
func initConfig() *Config {
	config := &Config{}
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./etc/config.yaml"
	}

	err := readConfig(configPath, config)
	if err != nil {
		logutils.Log.Error("init config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
