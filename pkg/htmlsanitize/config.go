package htmlsanitize

import (
	"fmt"
	"strings"

	appconfig "github.com/dmitrymomot/miscutils/pkg/config"
)

// Config is the env-loadable form of the Cleaner options.
type Config struct {
	LinkProtection   bool     `env:"SANITIZE_LINK_PROTECTION" envDefault:"false"`
	WhitelistDomains []string `env:"SANITIZE_WHITELIST_DOMAINS" envSeparator:","`
	AbsoluteDomain   string   `env:"SANITIZE_ABSOLUTE_DOMAIN"`
	ACLFile          string   `env:"SANITIZE_ACL_FILE"`
	DenyShortCircuit bool     `env:"SANITIZE_DENY_SHORT_CIRCUIT" envDefault:"false"`
}

// Options converts cfg to Cleaner options, reading the ACL file if one is set.
func (cfg Config) Options() ([]Option, error) {
	opts := []Option{
		WithLinkProtection(cfg.LinkProtection),
		WithWhitelistDomains(cfg.WhitelistDomains...),
		WithAbsoluteDomain(cfg.AbsoluteDomain),
	}
	if cfg.DenyShortCircuit {
		opts = append(opts, WithDenyMode(DenyShortCircuit))
	}
	if cfg.ACLFile != "" {
		acl, err := LoadACLFile(cfg.ACLFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTagACL(acl))
	}
	return opts, nil
}

// NewFromConfig builds a Cleaner from cfg. opts are applied after the
// config-derived options and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Cleaner, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return NewCleaner(append(base, opts...)...), nil
}

// ConfigFromSettings reads a Config from flat settings nested under parent,
// e.g. "sanitize.link_protection = true". Recognized keys: link_protection,
// whitelist_domains (comma separated), absolute_domain, acl_file,
// deny_short_circuit.
func ConfigFromSettings(settings map[string]string, parent string) Config {
	children := appconfig.Children(settings, parent)

	var cfg Config
	cfg.LinkProtection, _ = children["link_protection"].(bool)
	cfg.DenyShortCircuit, _ = children["deny_short_circuit"].(bool)
	cfg.AbsoluteDomain = settingString(children["absolute_domain"])
	cfg.ACLFile = settingString(children["acl_file"])
	for _, d := range strings.Split(settingString(children["whitelist_domains"]), ",") {
		if d = strings.TrimSpace(d); d != "" {
			cfg.WhitelistDomains = append(cfg.WhitelistDomains, d)
		}
	}
	return cfg
}

func settingString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
