package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

type configParams struct {
	Addr         string `env:"ADDRESS"`
	TemplatePath string `env:"TEMPLATE_PATH"`
	CGIDir       string `env:"CGI_DIR"`
	MsPerChar    int64  `env:"MS_PER_CHAR" envDefault:"-1"`
	CountSpaces  *bool  `env:"COUNT_SPACES"`
	Pprof        bool   `env:"PPROF"`
}

func main() {
	var defaultParams configParams

	err := env.Parse(&defaultParams)
	if err != nil {
		log.Fatalf("can't parse env: %v", err)
	}

	serverAddr := flag.String("a", "localhost:8080", "server address")
	templatePath := flag.String("t", "web/output.html", "template path, empty for the built-in template")
	cgiDir := flag.String("c", "", "cgi-bin directory, empty to disable")
	msPerChar := flag.Int64("m", 50, "milliseconds per character")
	countSpaces := flag.Bool("s", true, "count whitespace characters")
	enablePprof := flag.Bool("p", false, "enable pprof handlers")

	flag.Parse()

	if defaultParams.Addr != "" {
		serverAddr = &defaultParams.Addr
	}

	if defaultParams.TemplatePath != "" {
		templatePath = &defaultParams.TemplatePath
	}

	if defaultParams.CGIDir != "" {
		cgiDir = &defaultParams.CGIDir
	}

	if defaultParams.MsPerChar != -1 {
		msPerChar = &defaultParams.MsPerChar
	}

	if defaultParams.CountSpaces != nil {
		countSpaces = defaultParams.CountSpaces
	}

	if defaultParams.Pprof {
		enablePprof = &defaultParams.Pprof
	}

	portService := func() int64 {
		split := strings.Split(*serverAddr, ":")
		if len(split) != 2 {
			log.Fatalf("can't parse address: %s", *serverAddr)
		}
		port, err := strconv.ParseInt(split[1], 10, 64)
		if err != nil {
			log.Fatalf("can't parse port: %v", err)
		}

		return port
	}()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("can't sync logger: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	if err := run(ctx, &config{
		logger:       *logger.Sugar(),
		templatePath: *templatePath,
		cgiDir:       *cgiDir,
		port:         portService,
		msPerChar:    *msPerChar,
		countSpaces:  *countSpaces,
		pprof:        *enablePprof,
	}); err != nil {
		logger.Error("can't run server", zap.Error(err))
	}
}
