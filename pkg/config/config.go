package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Fuentes de datos soportadas para el snapshot de estoque.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Codificaciones aceptadas para el archivo CSV.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Data   DataConfig
	DB     DBConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío o inexistente = sin /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DataConfig origen del snapshot de distribución de medicamentos.
type DataConfig struct {
	Source      string // csv | postgres
	CSVPath     string
	CSVEncoding string // utf-8 | latin1
}

// DBConfig configuración de PostgreSQL (solo lectura, DATA_SOURCE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	StockTable  string // tabla con columnas unidade, distrito, produto, quantidade
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// ReportConfig tamaños por defecto de los rankings.
type ReportConfig struct {
	TopN           int // top N general y por distrito seleccionado
	TopPerDistrict int // top K por distrito
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, CSV_PATH, DATA_SOURCE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "medicamentos-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Data: DataConfig{
			Source:      strings.ToLower(getString(v, "DATA_SOURCE", SourceCSV)),
			CSVPath:     getString(v, "CSV_PATH", "medicamentos_por_unidade_de_saude.csv"),
			CSVEncoding: strings.ToLower(getString(v, "CSV_ENCODING", EncodingUTF8)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "saude"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			StockTable:  getString(v, "DB_STOCK_TABLE", "medicamentos_por_unidade"),
		},
		Report: ReportConfig{
			TopN:           getInt(v, "REPORT_TOP_N", 10),
			TopPerDistrict: getInt(v, "REPORT_TOP_PER_DISTRICT", 3),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("config: DATA_SOURCE inválido %q (csv|postgres)", c.Data.Source)
	}
	switch c.Data.CSVEncoding {
	case EncodingUTF8, "utf8":
		c.Data.CSVEncoding = EncodingUTF8
	case EncodingLatin1, "iso-8859-1":
		c.Data.CSVEncoding = EncodingLatin1
	default:
		return fmt.Errorf("config: CSV_ENCODING inválido %q (utf-8|latin1)", c.Data.CSVEncoding)
	}
	if c.Report.TopN <= 0 {
		c.Report.TopN = 10
	}
	if c.Report.TopPerDistrict <= 0 {
		c.Report.TopPerDistrict = 3
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
