package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pizza-pos/internal/models"
)

// Menu sources
const (
	MenuSourceConfig   = "config"
	MenuSourcePostgres = "postgres"
)

// Config holds all configuration for the point-of-sale system
type Config struct {
	App      AppConfig      `yaml:"app"`
	Menu     MenuConfig     `yaml:"menu"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// AppConfig holds general settings
type AppConfig struct {
	ShopName string `yaml:"shop_name"`
}

// MenuConfig describes where the catalog comes from
type MenuConfig struct {
	Source string           `yaml:"source"`
	Items  []MenuItemConfig `yaml:"items"`
}

// MenuItemConfig is one catalog entry; price is a decimal string
type MenuItemConfig struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// TelegramConfig holds the receipt bot settings
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Default returns a configuration with the standard menu and no infrastructure
func Default() *Config {
	return &Config{
		App:  AppConfig{ShopName: "Pizza Shop"},
		Menu: MenuConfig{Source: MenuSourceConfig},
	}
}

// Load reads configuration from a YAML file, then applies environment overrides.
// A missing file yields the default configuration.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Menu.Source == "" {
		cfg.Menu.Source = MenuSourceConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides file values with POS_* environment variables
func (c *Config) applyEnv() error {
	setString(&c.App.ShopName, "POS_SHOP_NAME")
	setString(&c.Menu.Source, "POS_MENU_SOURCE")

	setString(&c.Database.Host, "POS_DB_HOST")
	setString(&c.Database.User, "POS_DB_USER")
	setString(&c.Database.Password, "POS_DB_PASSWORD")
	setString(&c.Database.Database, "POS_DB_NAME")
	if err := setInt(&c.Database.Port, "POS_DB_PORT"); err != nil {
		return err
	}

	setString(&c.RabbitMQ.Host, "POS_RABBITMQ_HOST")
	setString(&c.RabbitMQ.User, "POS_RABBITMQ_USER")
	setString(&c.RabbitMQ.Password, "POS_RABBITMQ_PASSWORD")
	if err := setInt(&c.RabbitMQ.Port, "POS_RABBITMQ_PORT"); err != nil {
		return err
	}

	setString(&c.Telegram.Token, "POS_TELEGRAM_TOKEN")
	if v := os.Getenv("POS_TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid POS_TELEGRAM_CHAT_ID value: %w", err)
		}
		c.Telegram.ChatID = id
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.Menu.Source {
	case MenuSourceConfig:
		if _, err := c.Catalog(); err != nil {
			return err
		}
	case MenuSourcePostgres:
		if !c.DatabaseEnabled() {
			return fmt.Errorf("menu.source is postgres but database.host is not set")
		}
	default:
		return fmt.Errorf("unknown menu source: %s", c.Menu.Source)
	}
	return nil
}

// Catalog builds the menu from the config items, or the default menu when none are listed
func (c *Config) Catalog() (*models.Catalog, error) {
	if len(c.Menu.Items) == 0 {
		return models.DefaultCatalog(), nil
	}

	items := make([]models.MenuItem, 0, len(c.Menu.Items))
	for i, entry := range c.Menu.Items {
		price, err := models.ParseMoney(strings.TrimSpace(entry.Price))
		if err != nil {
			return nil, fmt.Errorf("invalid price for menu.items[%d]: %w", i, err)
		}
		item, err := models.NewMenuItem(entry.Name, price)
		if err != nil {
			return nil, fmt.Errorf("menu.items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return models.NewCatalog(items), nil
}

// DatabaseEnabled reports whether a PostgreSQL host is configured
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}

// RabbitMQEnabled reports whether a RabbitMQ host is configured
func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.Host != ""
}

// TelegramEnabled reports whether receipts should also go to Telegram
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
