package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"

	"github.com/omniviewdev/netsvc-sdk/pkg/config"
	"github.com/omniviewdev/netsvc-sdk/pkg/manager"
	"github.com/omniviewdev/netsvc-sdk/pkg/quota"
	"github.com/omniviewdev/netsvc-sdk/pkg/types"
	"github.com/omniviewdev/netsvc-sdk/pkg/v1/resource"
)

// dryRunPlugin stands in for the service plugin when no plugin binary is
// given; nothing is dispatched to it.
const dryRunPlugin = "dry-run"

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	manifest string
	config   string
	plugin   string
	build    resource.BuildOptions
	debug    bool
}

func parse(args []string) (*options, error) {
	var (
		app           = kingpin.New(filepath.Base(os.Args[0]), "Show the resource extensions a service manifest registers.").DefaultEnvars()
		manifest      = app.Flag("manifest", "Service manifest (YAML).").Short('m').Required().ExistingFile()
		cfg           = app.Flag("config", "Process configuration (YAML).").Short('c').ExistingFile()
		plugin        = app.Flag("plugin", "Service plugin binary to launch and dispense the service plugin from.").Short('p').ExistingFile()
		registerQuota = app.Flag("register-quota", "Register every resource with the quota registry.").Bool()
		translate     = app.Flag("translate-name", "Expose collections with hyphens instead of underscores.").Bool()
		bulk          = app.Flag("allow-bulk", "Enable bulk create.").Bool()
		debug         = app.Flag("debug", "Enable debug logging.").Short('d').Bool()
	)
	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	return &options{
		manifest: *manifest,
		config:   *cfg,
		plugin:   *plugin,
		build: resource.BuildOptions{
			RegisterQuota: *registerQuota,
			TranslateName: *translate,
			AllowBulk:     *bulk,
		},
		debug: *debug,
	}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(out io.Writer, args []string) error {
	opts, err := parse(args)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg := config.Default()
	if opts.config != "" {
		if cfg, err = config.Load(opts.config); err != nil {
			return err
		}
	}

	m, err := resource.LoadManifest(opts.manifest)
	if err != nil {
		return err
	}
	if _, known := types.ParseServiceType(m.Service); !known {
		log.Warn("service is not a known service type, it will have no path prefix", zap.String("service", m.Service))
	}

	plugins, stop, err := newPluginRegistry(opts, m.Service, log)
	if err != nil {
		return err
	}
	defer stop()
	quotas := quota.NewRegistry(cfg.Quota, log)

	b, err := resource.NewBuilder(resource.BuilderConfig[any]{
		Plugins:  plugins,
		Quotas:   quotas,
		Settings: cfg,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	exts, err := b.BuildResourceInfo(m.Overrides, &m.Resources, m.Service, m.Actions, opts.build)
	if err != nil {
		return err
	}

	return writeSummary(out, newSummary(m.Service, exts, quotas.Resources()))
}

// newPluginRegistry resolves the service plugin from a launched plugin
// process when opts.plugin is set, and from an in-memory dry-run registry
// otherwise. stop releases the plugin process.
func newPluginRegistry(opts *options, service string, log *zap.Logger) (resource.PluginRegistry[any], func(), error) {
	if opts.plugin == "" {
		reg := manager.New[any](log)
		if err := reg.RegisterServicePlugin(service, dryRunPlugin); err != nil {
			return nil, nil, err
		}
		return reg, func() {}, nil
	}

	level := hclog.Warn
	if opts.debug {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Output: os.Stderr,
		Level:  level,
	})

	client, protocol, err := manager.Launch(manager.LaunchConfig{
		Cmd:       exec.Command(opts.plugin),
		Handshake: manager.Handshake,
		Plugins:   goplugin.PluginSet{service: &manager.ServicePlugin{}},
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return manager.NewDispenser[any](protocol, nil, logger), client.Kill, nil
}

type summary struct {
	Service   string             `yaml:"service"`
	Resources []extensionSummary `yaml:"resources"`
	Quotas    []quotaSummary     `yaml:"quotas,omitempty"`
}

type extensionSummary struct {
	Collection    string                 `yaml:"collection"`
	Resource      string                 `yaml:"resource"`
	PathPrefix    string                 `yaml:"path_prefix"`
	MemberActions resource.MemberActions `yaml:"member_actions,omitempty"`
	Routes        []resource.Route       `yaml:"routes"`
}

type quotaSummary struct {
	Resource     string `yaml:"resource"`
	DefaultLimit int    `yaml:"default_limit"`
}

func newSummary(service string, exts []*resource.ResourceExtension, quotas []quota.Resource) summary {
	s := summary{Service: service}
	for _, e := range exts {
		s.Resources = append(s.Resources, extensionSummary{
			Collection:    e.Collection,
			Resource:      e.Resource(),
			PathPrefix:    e.PathPrefix,
			MemberActions: e.MemberActions,
			Routes:        e.Routes(),
		})
	}
	for _, q := range quotas {
		s.Quotas = append(s.Quotas, quotaSummary{Resource: q.Name, DefaultLimit: q.DefaultLimit})
	}
	return s
}

func writeSummary(out io.Writer, s summary) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode summary: %w", err)
	}
	return enc.Close()
}
