// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	DBName     string `mapstructure:"dbName"`
	Collection string `mapstructure:"collection"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
	Endpoint         string `mapstructure:"endpoint"`
	UsePathStyle     bool   `mapstructure:"usePathStyle"`
}

// Enabled reports whether exports to S3 are configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "mongo" hoặc "memory"
}

type RetrievalConfig struct {
	DuplicateWindow time.Duration `mapstructure:"duplicateWindow"`
	DisplayTimezone string        `mapstructure:"displayTimezone"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	S3        S3Config        `mapstructure:"s3"`
	Store     StoreConfig     `mapstructure:"store"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.dbName", "waste_retrieval")
	v.SetDefault("mongo.collection", "wasteRetrievals")
	v.SetDefault("store.driver", StoreDriverMongo)
	v.SetDefault("retrieval.duplicateWindow", "24h")
	v.SetDefault("retrieval.displayTimezone", "UTC")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.AutomaticEnv()
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("mongo.collection", "MONGO_COLLECTION")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.issuer", "JWT_ISSUER")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("s3.usePathStyle", "S3_USE_PATH_STYLE")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("retrieval.duplicateWindow", "RETRIEVAL_DUPLICATE_WINDOW")
	v.BindEnv("retrieval.displayTimezone", "RETRIEVAL_DISPLAY_TIMEZONE")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("cors.allowedOrigins", "CORS_ALLOWED_ORIGINS")

	// Nếu file không tồn tại, chỉ sử dụng các biến môi trường.
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate checks the values the server cannot start without.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Retrieval.DuplicateWindow <= 0 {
		return fmt.Errorf("retrieval.duplicateWindow must be positive, got %s", c.Retrieval.DuplicateWindow)
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.DBName == "" {
			return errors.New("mongo.uri and mongo.dbName are required for the mongo store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if _, err := time.LoadLocation(c.Retrieval.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid retrieval.displayTimezone: %w", err)
	}
	return nil
}

// DisplayLocation trả về múi giờ dùng để hiển thị thời gian.
func (c Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.Retrieval.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
