package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	LocalStore  LocalStoreConfig
	RemoteStore RemoteStoreConfig
	DB          DBConfig
	Docstore    DocstoreConfig
	JWT         JWTConfig
}

type AppConfig struct {
	Port       string
	Env        string
	ClinicName string
}

// LocalStoreConfig points at the Redis instance on the clinic device.
type LocalStoreConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RemoteStoreConfig points at the central document store service.
type RemoteStoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DBConfig is the Postgres connection for the document store service.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DocstoreConfig is the listen config for the document store service.
type DocstoreConfig struct {
	Port string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		expiry = 12 * time.Hour
	}

	remoteTimeout, err := time.ParseDuration(viper.GetString("REMOTE_STORE_TIMEOUT"))
	if err != nil {
		remoteTimeout = 10 * time.Second
	}

	clinicName := viper.GetString("CLINIC_NAME")
	if clinicName == "" {
		clinicName = "Clinic"
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			ClinicName: clinicName,
		},
		LocalStore: LocalStoreConfig{
			Host:     viper.GetString("LOCAL_STORE_HOST"),
			Port:     viper.GetString("LOCAL_STORE_PORT"),
			Password: viper.GetString("LOCAL_STORE_PASSWORD"),
			DB:       viper.GetInt("LOCAL_STORE_DB"),
		},
		RemoteStore: RemoteStoreConfig{
			BaseURL: viper.GetString("REMOTE_STORE_URL"),
			Timeout: remoteTimeout,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Docstore: DocstoreConfig{
			Port: viper.GetString("DOCSTORE_PORT"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: expiry,
		},
	}

	return config, nil
}
