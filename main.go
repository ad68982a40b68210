package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	lsp "github.com/vantaboard/class-fold/providers"
)

var (
	webSocketPort int
	configPath    string
	verbosity     int
	logPath       string
)

func init() {
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.IntVar(&webSocketPort, "web-socket", 0, "Start websocket server on port")
	pflag.StringVar(&configPath, "config", "", "YAML configuration file")
	pflag.CountVarP(&verbosity, "verbose", "v", "Add log verbosity (repeatable)")
	pflag.StringVar(&logPath, "log", "", "Log to file instead of stderr")
}

func main() {
	pflag.Parse()

	err := run()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var path *string

	if logPath != "" {
		path = &logPath
	}

	commonlog.Configure(verbosity, path)

	config, err := lsp.LoadConfiguration(configPath)

	if err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}

	return lsp.StartServer(config, webSocketPort)
}
