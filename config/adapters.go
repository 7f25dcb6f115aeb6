package config

import (
	"os"

	"pickem-app-go/database"
	"pickem-app-go/logging"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

// ToDatabaseConfig converts Config to database.Config
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Database: c.Database.Database,
	}
}

// ToLoggingConfig converts Config to logging.Config
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Output:      os.Stdout,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
}

// ToRedisConfig converts Config to services.RedisConfig
func (c *Config) ToRedisConfig() services.RedisConfig {
	return services.RedisConfig{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		Prefix:   c.Redis.Prefix,
	}
}

// RuleBook returns the week rules for this league
func (c *Config) RuleBook() models.RuleBook {
	return models.NewRuleBook(c.League.FinalWeek)
}
