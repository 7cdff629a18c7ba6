package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CrawlerConfig drives URL discovery over the search result pages.
type CrawlerConfig struct {
	BaseURL        string
	Domain         string
	UserAgent      string
	RequestTimeout time.Duration
	MaxPages       int
	OutputFile     string
	// DelayMin/DelayMax bound the randomized politeness delay between
	// search page requests.
	DelayMin time.Duration
	DelayMax time.Duration
}

// ParserConfig drives listing page fetching.
type ParserConfig struct {
	Delay          time.Duration
	RequestTimeout time.Duration
	DebugFile      string
}

// GeocoderConfig drives the Nominatim client.
type GeocoderConfig struct {
	UserAgent string
	Delay     time.Duration
}

// PipelineConfig drives the ingestion orchestrator.
type PipelineConfig struct {
	Delay     time.Duration
	InputFile string
}

type DBConfig struct {
	URL string
}

// RabbitMQConfig is optional; an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

type StdoutLogConfig struct {
	Level string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	Crawler      CrawlerConfig
	Parser       ParserConfig
	Geocoder     GeocoderConfig
	Pipeline     PipelineConfig
	Database     DBConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig loads the configuration from environment variables, with a
// .env file as an optional source. Every setting except DATABASE_URL
// has a default; DATABASE_URL is validated by the pipeline composition
// root since the crawler does not need it.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v. Relying on environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "estimareimob")

	cfg.Crawler.BaseURL = getEnvAsString("CRAWLER_BASE_URL",
		"https://www.publi24.ro/anunturi/imobiliare/de-vanzare/apartamente/bucuresti/")
	cfg.Crawler.Domain = getEnvAsString("CRAWLER_DOMAIN", "https://www.publi24.ro")
	cfg.Crawler.UserAgent = getEnvAsString("USER_AGENT",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36")
	cfg.Crawler.RequestTimeout = getEnvAsSeconds("REQUEST_TIMEOUT", 15.0)
	cfg.Crawler.MaxPages = getEnvAsInt("MAX_PAGES_TO_CRAWL", 200)
	cfg.Crawler.OutputFile = getEnvAsString("OUTPUT_FILE", "listing_urls.txt")
	cfg.Crawler.DelayMin = getEnvAsSeconds("SCRAPE_DELAY_MIN", 0.25)
	cfg.Crawler.DelayMax = getEnvAsSeconds("SCRAPE_DELAY_MAX", 1.5)
	if cfg.Crawler.DelayMax < cfg.Crawler.DelayMin {
		log.Printf("Warning: SCRAPE_DELAY_MAX < SCRAPE_DELAY_MIN, using SCRAPE_DELAY_MIN for both\n")
		cfg.Crawler.DelayMax = cfg.Crawler.DelayMin
	}

	cfg.Parser.Delay = getEnvAsSeconds("PARSER_DELAY", 0)
	cfg.Parser.RequestTimeout = getEnvAsSeconds("PARSER_REQUEST_TIMEOUT", 3.0)
	cfg.Parser.DebugFile = getEnvAsString("PARSER_DEBUG_FILE", "debug_publi24.html")

	cfg.Geocoder.UserAgent = getEnvAsString("GEOCODER_USER_AGENT", "proptech_mvp_romania")
	cfg.Geocoder.Delay = getEnvAsSeconds("GEOCODER_DELAY", 0.25)

	cfg.Pipeline.Delay = getEnvAsSeconds("PIPELINE_DELAY", 0.25)
	cfg.Pipeline.InputFile = getEnvAsString("PIPELINE_INPUT_FILE", "listing_urls.txt")

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "listings_events")
	cfg.RabbitMQ.RoutingKey = getEnvAsString("RABBITMQ_ROUTING_KEY", "listing.ingested")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsSeconds reads a float number of seconds (e.g. "0.25") into a
// time.Duration.
func getEnvAsSeconds(key string, defaultSeconds float64) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return time.Duration(defaultSeconds * float64(time.Second))
	}
	valFloat, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %g\n", key, valStr, err, defaultSeconds)
		return time.Duration(defaultSeconds * float64(time.Second))
	}
	return time.Duration(valFloat * float64(time.Second))
}
