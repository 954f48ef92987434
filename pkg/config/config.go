package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuração do backend REST do CRM.
type APIConfig struct {
	// BaseURL raiz dos endpoints (/cliente, /funil, /etapa, /negociacao, ...).
	BaseURL string
	// TimeoutSeconds timeout de rede por chamada. O modelo de falha é uma
	// única tentativa por chamada; não há retry nem backoff.
	TimeoutSeconds int
}

// SessionConfig configuração da sessão persistida em disco.
type SessionConfig struct {
	// FilePath caminho do arquivo JSON com token + usuário serializado.
	FilePath string
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, CRM_API_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "crmdesk"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "CRM_API_BASE_URL", "http://localhost:3333"),
			TimeoutSeconds: getInt(v, "CRM_HTTP_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			FilePath: getString(v, "CRM_SESSION_FILE", defaultSessionPath()),
		},
	}

	return cfg, nil
}

// defaultSessionPath devolve ~/.crmdesk/session.json (ou caminho relativo se
// o home não puder ser resolvido).
func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".crmdesk", "session.json")
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
