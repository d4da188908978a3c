// Package logging builds the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Options struct {
	Level         string
	Format        string
	LogstashAddr  string
	LogstashLabel string
	Output        io.Writer
}

// New returns a configured logger and a closer for the optional Logstash
// connection.
func New(options Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.Out = os.Stdout
	if options.Output != nil {
		logger.Out = options.Output
	}

	rawLevel := strings.TrimSpace(options.Level)
	if rawLevel == "" {
		rawLevel = "info"
	}
	level, err := logrus.ParseLevel(rawLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(options.Format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("unsupported log format %q", options.Format)
	}

	closer := func() error { return nil }
	if addr := strings.TrimSpace(options.LogstashAddr); addr != "" {
		conn, err := net.Dial("udp", addr)
		if err != nil {
			return nil, nil, fmt.Errorf("dial logstash: %w", err)
		}
		label := options.LogstashLabel
		if label == "" {
			label = "vitalmente"
		}
		hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": label}))
		logger.Hooks.Add(hook)
		closer = conn.Close
	}

	return logger, closer, nil
}
