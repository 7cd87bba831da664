package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/miscutils/pkg/config"
	"github.com/dmitrymomot/miscutils/pkg/htmlsanitize"
	"github.com/dmitrymomot/miscutils/pkg/httpserver"
	"github.com/dmitrymomot/miscutils/pkg/logger"
	"github.com/dmitrymomot/miscutils/pkg/requestid"
	"github.com/dmitrymomot/miscutils/pkg/sanitizeapi"
)

const serviceName = "miscutils"

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
}

type sanitizeFlags struct {
	aclFile          string
	linkProtection   bool
	whitelist        []string
	absoluteDomain   string
	denyShortCircuit bool
}

func newRootCmd() *cobra.Command {
	var (
		envFiles []string
		flags    sanitizeFlags
	)

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Sanitize untrusted HTML and markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&envFiles, "env-file", nil, "extra .env files to load; ./.env is read when present")
	pf.StringVar(&flags.aclFile, "acl", "", "YAML tag ACL file")
	pf.BoolVar(&flags.linkProtection, "link-protection", false, "replace links to non-whitelisted hosts")
	pf.StringSliceVar(&flags.whitelist, "whitelist", nil, "hosts whose links are kept as-is")
	pf.StringVar(&flags.absoluteDomain, "absolute-domain", "", "rewrite relative links to https links on this host")
	pf.BoolVar(&flags.denyShortCircuit, "deny-short-circuit", false, "let the first matching ACL rule decide")

	root.AddCommand(
		newCleanCmd(&flags, "clean", "Sanitize raw HTML", (*htmlsanitize.Cleaner).Clean),
		newCleanCmd(&flags, "markdown", "Render markdown and sanitize the result", (*htmlsanitize.Cleaner).CleanMarkdown),
		newServeCmd(&flags),
	)
	return root
}

func newCleanCmd(flags *sanitizeFlags, use, short string, clean func(*htmlsanitize.Cleaner, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  short + ". Reads the named file, or stdin when no file is given, and writes to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, err := newCleaner(cmd, flags, log)
			if err != nil {
				return err
			}

			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := clean(c, in)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newServeCmd(flags *sanitizeFlags) *cobra.Command {
	var maxBody int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sanitizer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, err := newCleaner(cmd, flags, log)
			if err != nil {
				return err
			}

			var srvCfg httpserver.Config
			if err := config.Load(&srvCfg); err != nil {
				return err
			}
			srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
			return srv.Run(cmd.Context(), sanitizeapi.Router(c,
				sanitizeapi.WithLogger(log),
				sanitizeapi.WithMaxBodyBytes(maxBody),
			))
		},
	}
	cmd.Flags().Int64Var(&maxBody, "max-body", sanitizeapi.DefaultMaxBodyBytes, "request body limit in bytes")
	return cmd
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return nil, err
	}
	opts := []logger.Option{
		logger.WithOutput(w),
		logger.WithEnvironment(app.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if app.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(app.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", app.LogLevel, err)
		}
		opts = append(opts, logger.WithLevel(lvl))
	}
	return logger.New(opts...), nil
}

// newCleaner builds the Cleaner from SANITIZE_* variables, with explicitly
// set flags taking precedence.
func newCleaner(cmd *cobra.Command, flags *sanitizeFlags, log *slog.Logger) (*htmlsanitize.Cleaner, error) {
	var cfg htmlsanitize.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("acl") {
		cfg.ACLFile = flags.aclFile
	}
	if fs.Changed("link-protection") {
		cfg.LinkProtection = flags.linkProtection
	}
	if fs.Changed("whitelist") {
		cfg.WhitelistDomains = flags.whitelist
	}
	if fs.Changed("absolute-domain") {
		cfg.AbsoluteDomain = flags.absoluteDomain
	}
	if fs.Changed("deny-short-circuit") {
		cfg.DenyShortCircuit = flags.denyShortCircuit
	}

	return htmlsanitize.NewFromConfig(cfg, htmlsanitize.WithLogger(log))
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
