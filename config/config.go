package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultCookieName  = "didilikeit_session"
	defaultExpiryDays  = 30
	defaultStateTTL    = 10 * time.Minute
	defaultStoreDriver = StoreDriverMemory
	defaultSheetName   = "Sheet1"
	defaultBlobKey     = "didilikeit.csv"
	defaultQRCodeSize  = 256

	defaultRecentEvents = 200
)

// EnvDevelop is the env.env value for local development.
const EnvDevelop = "develop"

// PlaceholderSecret is the session secret shipped in config.yaml. It is only
// accepted in develop.
const PlaceholderSecret = "change-me"

// Login modes for the local credential verifier.
const (
	LocalModeInvite   = "invite"
	LocalModePassword = "password"
)

// Table store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverSheets   = "sheets"
	StoreDriverBlob     = "blob"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Identity configures the delegated OAuth2 login. Leaving the client empty selects local login.
	Identity *IdentityConfig `json:"identity" yaml:"identity"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Session *SessionConfig `json:"session" yaml:"session"`

	// Store selects and configures the table store driver
	Store *StoreConfig `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// QRCode configuration for invite QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Worker configures the entry event consumer
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// IdentityConfig holds the OAuth2 client registration.
type IdentityConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string `json:"redirectUri" yaml:"redirectUri"`

	// Endpoint overrides; empty values use Google's endpoints.
	AuthURL     string `json:"authUrl" yaml:"authUrl"`
	TokenURL    string `json:"tokenUrl" yaml:"tokenUrl"`
	UserInfoURL string `json:"userInfoUrl" yaml:"userInfoUrl"`
}

// Configured reports whether an OAuth2 client is registered.
func (c *IdentityConfig) Configured() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != ""
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	AdminEmail string `json:"adminEmail" yaml:"adminEmail"`
	InviteCode string `json:"inviteCode" yaml:"inviteCode"`

	// LocalMode is "invite" or "password".
	LocalMode string `json:"localMode" yaml:"localMode"`

	// AllowLocal keeps local login available when an OAuth2 client is configured.
	AllowLocal bool `json:"allowLocal" yaml:"allowLocal"`

	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`

	// StateTTL bounds how long a pending OAuth2 state token stays redeemable.
	StateTTL time.Duration `json:"stateTtl" yaml:"stateTtl"`

	// Credentials is the account list for password mode.
	Credentials []CredentialConfig `json:"credentials" yaml:"credentials"`
}

// CredentialConfig is one local account with a bcrypt password hash.
type CredentialConfig struct {
	Email        string `json:"email" yaml:"email"`
	DisplayName  string `json:"displayName" yaml:"displayName"`
	PasswordHash string `json:"passwordHash" yaml:"passwordHash"`
}

// SessionConfig defines the browser session cookie.
type SessionConfig struct {
	CookieName string `json:"cookieName" yaml:"cookieName"`
	ExpiryDays int    `json:"expiryDays" yaml:"expiryDays"`
	Secret     string `json:"secret" yaml:"secret"`
	Secure     bool   `json:"secure" yaml:"secure"`
}

// TTL returns the session lifetime.
func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryDays) * 24 * time.Hour
}

// StoreConfig selects the table store.
type StoreConfig struct {
	// Driver is one of memory, sheets, blob or postgres.
	Driver string `json:"driver" yaml:"driver"`

	Sheets *SheetsConfig `json:"sheets" yaml:"sheets"`
	Blob   *BlobConfig   `json:"blob" yaml:"blob"`
}

// SheetsConfig points at the spreadsheet used as the table.
type SheetsConfig struct {
	SpreadsheetID   string `json:"spreadsheetId" yaml:"spreadsheetId"`
	SheetName       string `json:"sheetName" yaml:"sheetName"`
	CredentialsFile string `json:"credentialsFile" yaml:"credentialsFile"`
	// Endpoint overrides the API endpoint, mostly for tests.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// BlobConfig points at the bucket object holding the table as CSV.
type BlobConfig struct {
	// BucketURL is a gocloud.dev bucket URL such as file:///var/lib/didilikeit or gs://bucket.
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	Key       string `json:"key" yaml:"key"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "noop", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// WorkerConfig defines the activity worker that consumes entry events.
type WorkerConfig struct {
	// RecentEvents bounds the in-memory activity feed.
	RecentEvents int `json:"recentEvents" yaml:"recentEvents"`

	// ActivityToken is the bearer token GET /activity requires. Empty disables the feed.
	ActivityToken string `json:"activityToken" yaml:"activityToken"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// IDENTITY_CLIENTSECRET -> identity.clientSecret (not identity.clientsecret)
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section so callers never see nil sections.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Identity == nil {
		c.Identity = &IdentityConfig{}
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.LocalMode == "" {
		c.Auth.LocalMode = LocalModeInvite
	}
	if c.Auth.StateTTL <= 0 {
		c.Auth.StateTTL = defaultStateTTL
	}
	if c.Session == nil {
		c.Session = &SessionConfig{}
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = defaultCookieName
	}
	if c.Session.ExpiryDays <= 0 {
		c.Session.ExpiryDays = defaultExpiryDays
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Driver == "" {
		c.Store.Driver = defaultStoreDriver
	}
	if c.Store.Sheets != nil && c.Store.Sheets.SheetName == "" {
		c.Store.Sheets.SheetName = defaultSheetName
	}
	if c.Store.Blob != nil && c.Store.Blob.Key == "" {
		c.Store.Blob.Key = defaultBlobKey
	}
	if c.QRCode == nil {
		c.QRCode = &QRCodeConfig{}
	}
	if c.QRCode.Size <= 0 {
		c.QRCode.Size = defaultQRCodeSize
	}
	if c.PubSub == nil {
		c.PubSub = &PubSubConfig{}
	}
	if c.Worker == nil {
		c.Worker = &WorkerConfig{}
	}
	if c.Worker.RecentEvents <= 0 {
		c.Worker.RecentEvents = defaultRecentEvents
	}
}

// Validate rejects combinations that cannot start a working service.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.Session.Secret == PlaceholderSecret && c.Env.Env != EnvDevelop {
		return errors.Errorf("session.secret must be changed from %q outside %s", PlaceholderSecret, EnvDevelop)
	}

	switch c.Auth.LocalMode {
	case LocalModeInvite, LocalModePassword:
	default:
		return errors.Errorf("unknown auth.localMode %q", c.Auth.LocalMode)
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverSheets:
		if c.Store.Sheets == nil || c.Store.Sheets.SpreadsheetID == "" {
			return errors.New("store.sheets.spreadsheetId is required for the sheets driver")
		}
	case StoreDriverBlob:
		if c.Store.Blob == nil || c.Store.Blob.BucketURL == "" {
			return errors.New("store.blob.bucketUrl is required for the blob driver")
		}
	case StoreDriverPostgres:
		if c.Postgres == nil {
			return errors.New("postgres section is required for the postgres driver")
		}
	default:
		return errors.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
