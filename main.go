package main

import (
	"net"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yougroupteam/swagger-router/config"
	"github.com/yougroupteam/swagger-router/embedded"
	"github.com/yougroupteam/swagger-router/spec"
	"github.com/yougroupteam/swagger-router/util"
)

// version is set at build time.
var version = "master"

// cli is the swagger-router command.
type cli struct {
	rootCmd    *cobra.Command
	configFile string
}

func newCLI() *cli {
	c := &cli{}

	c.rootCmd = &cobra.Command{
		Use:     "swagger-router",
		Short:   "Route HTTP requests against a swagger 2.0 document",
		Long:    "Serves a swagger 2.0 document: every request is matched to an operation, its parameters are resolved and cast, and the result is echoed back as JSON.",
		Version: version,
		RunE:    c.run,

		SilenceUsage: true,
	}

	c.setupFlags()

	return c
}

func (c *cli) setupFlags() {
	flags := c.rootCmd.Flags()
	flags.Int("port", 0, "Port to listen on")
	flags.String("unix", "", "Unix socket to listen on")
	flags.String("spec", "", "Path to a swagger document (YAML or JSON); the embedded sample is served without one")
	flags.StringVar(&c.configFile, "config", "", "Path to a YAML configuration file")
	flags.Bool("strict", false, "Validate the swagger document before serving it")
	flags.String("docs-path", "/api-docs", "Path the swagger document is served on")
	flags.Bool("verbose", false, "Enable verbose mode")
	flags.String("log-file", "", "Write logs to a rotated file instead of stderr")
}

// Execute runs the command.
func (c *cli) Execute() error {
	return c.rootCmd.Execute()
}

func (c *cli) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Log, cfg.Verbose)
	util.SetWarningLogger(logger)

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}

	network, address := cfg.ListenAddress()
	listener, err := net.Listen(network, address)
	if err != nil {
		return errors.Wrap(err, "error listening on socket")
	}
	logger.Infof("Listening on %s %v", network, address)

	server := http.Server{Handler: handler}
	return server.Serve(listener)
}

// loadDocument reads the configured swagger document, or the embedded sample
// when none is configured. It returns the raw bytes along with the document.
func loadDocument(cfg *config.Config, logger logrus.FieldLogger) (*spec.Document, []byte, error) {
	var doc *spec.Document
	var data []byte
	var err error
	source := "embedded sample"

	if cfg.Spec != "" {
		source = cfg.Spec
		doc, data, err = spec.LoadFile(cfg.Spec)
		if err != nil {
			return nil, nil, err
		}
	} else {
		data = embedded.Swagger
		doc, err = spec.Load(data)
		if err != nil {
			return nil, nil, errors.Wrap(err, "error loading embedded sample")
		}
	}

	if cfg.Strict {
		if err := spec.ValidateDocument(data); err != nil {
			return nil, nil, errors.Wrapf(err, "error validating %s", source)
		}
	}

	logger.Infof("Loaded swagger document from %s with %v path(s)", source, len(doc.Paths))
	return doc, data, nil
}

func main() {
	if err := newCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
