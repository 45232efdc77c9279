// SPDX-License-Identifier: MPL-2.0

package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyprov/pyprov/internal/credentials"
	"github.com/pyprov/pyprov/internal/provision"
	"github.com/pyprov/pyprov/internal/toolchain"
)

// DefaultCacheTimeout bounds the Redis ping.
const DefaultCacheTimeout = 2 * time.Second

type (
	// Config holds the doctor's inputs.
	Config struct {
		// Provision supplies the interpreter, paths and credential keys to check.
		Provision *provision.Config
		// RedisURL is the cache backend. Empty skips the cache check.
		RedisURL     string
		CacheTimeout time.Duration
	}

	// Doctor runs the readiness checks.
	Doctor struct {
		config Config
		runner toolchain.Runner
		logger *log.Logger
		lookup credentials.LookupFunc
		cache  CacheProbe
	}

	// Option configures a Doctor.
	Option func(*Doctor)
)

// WithLookup replaces the process environment lookup used for API keys.
func WithLookup(lookup credentials.LookupFunc) Option {
	return func(d *Doctor) {
		d.lookup = lookup
	}
}

// WithCacheProbe replaces the Redis probe.
func WithCacheProbe(p CacheProbe) Option {
	return func(d *Doctor) {
		d.cache = p
	}
}

// New creates a Doctor.
func New(cfg Config, runner toolchain.Runner, logger *log.Logger, opts ...Option) *Doctor {
	if cfg.Provision == nil {
		cfg.Provision = provision.DefaultConfig()
	}
	if cfg.CacheTimeout <= 0 {
		cfg.CacheTimeout = DefaultCacheTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Doctor{
		config: cfg,
		runner: runner,
		logger: logger,
		lookup: os.LookupEnv,
		cache:  RedisProbe{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes every check. Checks never stop early: the report lists all of them.
func (d *Doctor) Run(ctx context.Context) *Report {
	r := &Report{}
	d.checkInterpreter(ctx, r)
	d.checkEnvironment(r)
	d.checkManifest(r)
	d.checkCredentials(r)
	d.checkCache(ctx, r)
	return r
}

func (d *Doctor) checkInterpreter(ctx context.Context, r *Report) {
	cfg := d.config.Provision
	c := Check{Name: CheckInterpreter}

	minimum, err := toolchain.ParseMinimum(cfg.MinVersion)
	if err != nil {
		c.Severity, c.Message = SeverityFail, fmt.Sprintf("invalid minimum version %q", cfg.MinVersion)
		r.add(c)
		return
	}

	found, err := toolchain.NewInterpreter(cfg.Interpreter, d.runner).Version(ctx)
	switch {
	case err != nil:
		c.Severity = SeverityFail
		c.Message = fmt.Sprintf("%s: %v", cfg.Interpreter, err)
		c.Hint = fmt.Sprintf("install Python %s or newer", minimum)
	case !found.AtLeast(minimum):
		c.Severity = SeverityFail
		c.Message = fmt.Sprintf("Python %s or higher is required, found %s", minimum, found)
		c.Hint = fmt.Sprintf("install Python %s or newer", minimum)
	default:
		c.Severity, c.Message = SeverityOK, "Python "+found.String()
	}
	d.logger.Debug("interpreter check", "severity", c.Severity, "message", c.Message)
	r.add(c)
}

func (d *Doctor) checkEnvironment(r *Report) {
	cfg := d.config.Provision
	venv := toolchain.NewVirtualEnv(cfg.VenvDir.Resolve(cfg.WorkDir))

	c := Check{Name: CheckEnvironment}
	switch {
	case !venv.Exists():
		c.Severity, c.Message, c.Hint = SeverityFail, venv.Dir+" not found", "run pyprov to create it"
	case !fileExists(venv.Python()):
		c.Severity, c.Message = SeverityWarn, venv.Dir+" has no interpreter"
		c.Hint = "remove the directory and run pyprov again"
	default:
		c.Severity, c.Message = SeverityOK, venv.Dir
	}
	r.add(c)
}

func (d *Doctor) checkManifest(r *Report) {
	cfg := d.config.Provision
	path := cfg.Manifest.Resolve(cfg.WorkDir)

	c := Check{Name: CheckManifest}
	if fileExists(path) {
		c.Severity, c.Message = SeverityOK, path
	} else {
		c.Severity, c.Message, c.Hint = SeverityFail, path+" not found", "pip installs dependencies from this file"
	}
	r.add(c)
}

func (d *Doctor) checkCredentials(r *Report) {
	cfg := d.config.Provision
	path := cfg.CredentialsFile.Resolve(cfg.WorkDir)

	statuses, err := credentials.InspectWith(path, cfg.Template.Keys, d.lookup)
	if err != nil {
		r.add(Check{Name: CheckCredentials, Severity: SeverityFail, Message: err.Error()})
		return
	}

	for _, st := range statuses {
		c := Check{Name: st.Name}
		switch {
		case st.Present:
			c.Severity, c.Message = SeverityOK, fmt.Sprintf("%s (from %s)", st.Masked, st.Source)
		case st.Required:
			c.Severity, c.Message = SeverityFail, "not set"
			c.Hint = fmt.Sprintf("set %s in %s", st.Name, path)
		default:
			c.Severity, c.Message = SeverityWarn, "not set; the primary model will be used as a fallback"
		}
		r.add(c)
	}
}

func (d *Doctor) checkCache(ctx context.Context, r *Report) {
	if d.config.RedisURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.CacheTimeout)
	defer cancel()

	c := Check{Name: CheckCache}
	addr, err := d.cache.Probe(ctx, d.config.RedisURL)
	if err != nil {
		// The query tool runs without its cache, only slower.
		c.Severity, c.Message = SeverityWarn, err.Error()
		c.Hint = "start Redis to cache model responses, or ignore this warning"
	} else {
		c.Severity, c.Message = SeverityOK, "Redis at "+addr
	}
	r.add(c)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
