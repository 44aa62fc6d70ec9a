package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lyralogics/lyrasite/sitecontrol/util"
	"github.com/prometheus/common/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config contains the initial lyrasite configuration.
type Config struct {
	ServerURL   string
	Addr        string
	MetricsAddr string
	Log         LogConfig

	Routes RoutesConfig
	Assets AssetsConfig
	Cache  CacheConfig

	Site SiteConfig
}

type LogConfig struct {
	Format string
	Level  zerolog.Level
}

type RoutesConfig struct {
	// Absolute makes the route resolver emit scheme://host/path using
	// ServerURL instead of bare paths.
	Absolute bool
}

type AssetsConfig struct {
	// URL is prepended to every asset path, e.g. a CDN origin. Empty means
	// assets are served by this process from the site root.
	URL string
	// Root is a directory on disk that replaces the embedded assets.
	Root string
	// Strict makes the asset resolver fail for files it cannot find.
	Strict bool
	MaxAge time.Duration
}

type CacheConfig struct {
	Enabled bool
}

// SiteConfig holds everything that is swapped on reload.
type SiteConfig struct {
	Name        string     `json:"name"`
	Contact     Contact    `json:"contact"`
	Stylesheets []string   `json:"stylesheets"`
	Scripts     []string   `json:"scripts"`
	MenuPath    string     `json:"menuPath,omitempty"`
	Menu        []MenuItem `json:"menu"`
}

// Contact is the business information shown in the header top bar.
type Contact struct {
	Tagline   string `json:"tagline"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PhoneDial string `json:"phoneDial"`
	CTALabel  string `json:"ctaLabel"`
}

// DefaultContact is the LyraLogics contact block.
var DefaultContact = Contact{
	Tagline:   "LyraLogics That Ensures Your IT Runs Seamlessly, Anytime and Every Time",
	Address:   "4721 Rosebud Drive GA, Snellville , 30039",
	Email:     "info@lyralogics.com",
	Phone:     "+1 (678) 523 6569",
	PhoneDial: "6785236569",
	CTALabel:  "Get in Touch",
}

var (
	DefaultStylesheets = []string{
		"assets/vendors/bootstrap/css/bootstrap.min.css",
		"assets/vendors/fontawesome/css/all.min.css",
		"assets/vendors/techguru-icons/style.css",
		"assets/css/techguru.css",
		"assets/css/techguru-responsive.css",
	}
	DefaultScripts = []string{
		"assets/vendors/jquery/jquery-3.7.0.min.js",
		"assets/vendors/bootstrap/js/bootstrap.bundle.min.js",
		"assets/js/techguru.js",
	}
)

var (
	errInvalidPhoneDial = errors.New("phone_dial must be digits with an optional leading +")
	errInvalidEmail     = errors.New("email must contain @ and no quotes, brackets or spaces")
)

// LoadConfig prepares viper to read the configuration. path is either a
// directory to search for config.yaml or, with isFile, the file itself.
func LoadConfig(path string, isFile bool) error {
	if isFile {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		if path == "" {
			viper.AddConfigPath("/etc/lyrasite/")
			viper.AddConfigPath("$HOME/.lyrasite")
			viper.AddConfigPath(".")
		} else {
			// For testing
			viper.AddConfigPath(path)
		}
	}

	viper.SetEnvPrefix("lyrasite")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://127.0.0.1:8080")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("metrics_listen_addr", "127.0.0.1:9090")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", TextLogFormat)

	viper.SetDefault("routes.absolute", false)

	viper.SetDefault("assets.url", "")
	viper.SetDefault("assets.root", "")
	viper.SetDefault("assets.strict", false)
	viper.SetDefault("assets.max_age", "7d")

	viper.SetDefault("cache.enabled", true)

	viper.SetDefault("site.name", "LyraLogics")
	viper.SetDefault("site.contact.tagline", DefaultContact.Tagline)
	viper.SetDefault("site.contact.address", DefaultContact.Address)
	viper.SetDefault("site.contact.email", DefaultContact.Email)
	viper.SetDefault("site.contact.phone", DefaultContact.Phone)
	viper.SetDefault("site.contact.phone_dial", DefaultContact.PhoneDial)
	viper.SetDefault("site.contact.cta_label", DefaultContact.CTALabel)
	viper.SetDefault("site.stylesheets", DefaultStylesheets)
	viper.SetDefault("site.scripts", DefaultScripts)
	viper.SetDefault("site.menu_path", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if isFile || !errors.As(err, &notFound) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}

		log.Warn().Msg("No config file found, using defaults and environment")
	}

	// Collect any validation errors and return them all at once
	var errorText string
	if !strings.HasPrefix(viper.GetString("server_url"), "http://") &&
		!strings.HasPrefix(viper.GetString("server_url"), "https://") {
		errorText += "Fatal config error: server_url must start with https:// or http://\n"
	}

	if viper.GetString("assets.url") != "" &&
		!strings.HasPrefix(viper.GetString("assets.url"), "http://") &&
		!strings.HasPrefix(viper.GetString("assets.url"), "https://") &&
		!strings.HasPrefix(viper.GetString("assets.url"), "/") {
		errorText += "Fatal config error: assets.url must be an http(s) origin or start with /\n"
	}

	if viper.GetString("listen_addr") == viper.GetString("metrics_listen_addr") {
		errorText += "Fatal config error: listen_addr and metrics_listen_addr must differ\n"
	}

	if errorText != "" {
		return errors.New(strings.TrimSuffix(errorText, "\n"))
	}

	return nil
}

func GetLogConfig() LogConfig {
	logLevelStr := viper.GetString("log.level")
	logLevel, err := zerolog.ParseLevel(logLevelStr)
	if err != nil {
		logLevel = zerolog.DebugLevel
	}

	logFormatOpt := viper.GetString("log.format")
	var logFormat string
	switch logFormatOpt {
	case "json":
		logFormat = JSONLogFormat
	case "text", "":
		logFormat = TextLogFormat
	default:
		logFormat = TextLogFormat
		log.Error().
			Str("func", "GetLogConfig").
			Msgf("Could not parse log format: %s. Valid choices are 'json' or 'text'", logFormatOpt)
	}

	return LogConfig{
		Format: logFormat,
		Level:  logLevel,
	}
}

func GetAssetsConfig() (AssetsConfig, error) {
	maxAge := DefaultAssetMaxAge
	if value := viper.GetString("assets.max_age"); value != "" {
		parsed, err := model.ParseDuration(value)
		if err != nil {
			return AssetsConfig{}, fmt.Errorf("parsing assets.max_age %q: %w", value, err)
		}
		maxAge = time.Duration(parsed)
	}

	return AssetsConfig{
		URL:    strings.TrimSuffix(viper.GetString("assets.url"), "/"),
		Root:   util.ConfigRelativePath(viper.GetString("assets.root")),
		Strict: viper.GetBool("assets.strict"),
		MaxAge: maxAge,
	}, nil
}

// GetSiteConfig reads the reloadable part of the configuration.
func GetSiteConfig() (SiteConfig, error) {
	contact := Contact{
		Tagline:   strings.Join(strings.Fields(viper.GetString("site.contact.tagline")), " "),
		Address:   viper.GetString("site.contact.address"),
		Email:     viper.GetString("site.contact.email"),
		Phone:     viper.GetString("site.contact.phone"),
		PhoneDial: viper.GetString("site.contact.phone_dial"),
		CTALabel:  viper.GetString("site.contact.cta_label"),
	}

	var errs []error
	if err := contact.Validate(); err != nil {
		errs = append(errs, err)
	}

	menu := DefaultMenu
	menuPath := viper.GetString("site.menu_path")
	if menuPath != "" {
		var err error
		menu, err = LoadMenuFromPath(util.ConfigRelativePath(menuPath))
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return SiteConfig{}, errors.Join(errs...)
	}

	return SiteConfig{
		Name:        viper.GetString("site.name"),
		Contact:     contact,
		Stylesheets: viper.GetStringSlice("site.stylesheets"),
		Scripts:     viper.GetStringSlice("site.scripts"),
		MenuPath:    menuPath,
		Menu:        menu,
	}, nil
}

// Validate checks the fields that end up in link targets and reports every
// invalid one.
func (c Contact) Validate() error {
	var errs []error

	if !strings.Contains(c.Email, "@") || strings.ContainsAny(c.Email, "\"'<> \t\n") {
		errs = append(errs, fmt.Errorf("site.contact.email %q: %w", c.Email, errInvalidEmail))
	}

	if !validPhoneDial(c.PhoneDial) {
		errs = append(errs, fmt.Errorf("site.contact.phone_dial %q: %w", c.PhoneDial, errInvalidPhoneDial))
	}

	return errors.Join(errs...)
}

func validPhoneDial(dial string) bool {
	digits := strings.TrimPrefix(dial, "+")
	if digits == "" {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// GetSiteControlConfig assembles the full configuration from viper. LoadConfig
// must have been called first.
func GetSiteControlConfig() (*Config, error) {
	assets, assetsErr := GetAssetsConfig()
	site, siteErr := GetSiteConfig()
	if err := errors.Join(assetsErr, siteErr); err != nil {
		return nil, err
	}

	return &Config{
		ServerURL:   strings.TrimSuffix(viper.GetString("server_url"), "/"),
		Addr:        viper.GetString("listen_addr"),
		MetricsAddr: viper.GetString("metrics_listen_addr"),
		Log:         GetLogConfig(),

		Routes: RoutesConfig{
			Absolute: viper.GetBool("routes.absolute"),
		},
		Assets: assets,
		Cache: CacheConfig{
			Enabled: viper.GetBool("cache.enabled"),
		},

		Site: site,
	}, nil
}
