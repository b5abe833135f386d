package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/keyspace"
	v1 "github.com/arloliu/keyspace/adapter/cql/v1"
	v2 "github.com/arloliu/keyspace/adapter/cql/v2"
	"github.com/arloliu/keyspace/config"
	zaplog "github.com/arloliu/keyspace/contrib/logging/zap"
	"github.com/arloliu/keyspace/contrib/metrics/vm"
)

// clusterFactories maps a --driver value to a cluster client constructor.
var clusterFactories = map[string]func(*config.Config) keyspace.ClusterClient{
	"v1": func(cfg *config.Config) keyspace.ClusterClient { return v1.ClusterFromConfig(cfg) },
	"v2": func(cfg *config.Config) keyspace.ClusterClient { return v2.ClusterFromConfig(cfg) },
}

type rootOptions struct {
	configPath string
	driver     string
	verbose    bool
	metrics    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "keyspace-check",
		Short:        "Check connectivity of every configured Cassandra keyspace",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "keyspace.yaml", "path to the registry configuration file")

	check := &cobra.Command{
		Use:   "check",
		Short: "Connect every keyspace and print its session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			newCluster, ok := clusterFactories[opts.driver]
			if !ok {
				return fmt.Errorf("unknown driver %q, want v1 or v2", opts.driver)
			}

			return runCheck(cmd.Context(), cmd.OutOrStdout(), cfg, newCluster(cfg), opts)
		},
	}
	check.Flags().StringVar(&opts.driver, "driver", "v1", "CQL driver generation: v1 (gocql) or v2 (cassandra-gocql-driver)")
	check.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log registry events to stderr")
	check.Flags().BoolVar(&opts.metrics, "metrics", false, "print registry metrics in Prometheus text format")

	show := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}

	root.AddCommand(check, show)

	return root
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, cluster keyspace.ClusterClient, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	regOpts := []keyspace.Option{
		keyspace.WithConnectTimeout(cfg.ConnectTimeout),
		keyspace.WithAsync(cfg.Async),
	}

	if opts.verbose {
		base, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger := zaplog.New(base)
		defer func() { _ = logger.Sync() }()
		regOpts = append(regOpts, keyspace.WithLogger(logger))
	}

	var collector *vm.Collector
	if opts.metrics {
		collector = vm.New()
		regOpts = append(regOpts, keyspace.WithMetrics(collector))
	}

	reg, err := keyspace.NewRegistry(cluster, table, regOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = reg.Close() }()

	warmErr := reg.Warm(ctx)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tKEYSPACE\tSTATE")
	for _, ks := range table.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ks.Alias, ks.Name, reg.State(ks.Alias))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if collector != nil {
		collector.WritePrometheus(out)
	}

	return warmErr
}

func printConfig(out io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return err
	}

	return enc.Close()
}
