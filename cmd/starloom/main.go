package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/starloomhq/starloom/internal/analysis"
	"github.com/starloomhq/starloom/internal/chart"
	"github.com/starloomhq/starloom/internal/clock"
	"github.com/starloomhq/starloom/internal/config"
	"github.com/starloomhq/starloom/internal/flowstate"
	"github.com/starloomhq/starloom/internal/fulfillment"
	"github.com/starloomhq/starloom/internal/observability"
	"github.com/starloomhq/starloom/internal/payment"
	"github.com/starloomhq/starloom/internal/product"
	"github.com/starloomhq/starloom/internal/redis"
	"github.com/starloomhq/starloom/internal/report"
	"github.com/starloomhq/starloom/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "starloom",
		Short:   "Starloom CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		clock.Module,
		redis.Module,
		product.Module,
		chart.Module,
		analysis.Module,
		payment.Module,
		flowstate.Module,
		fulfillment.Module,
		report.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
