package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

// cmdLogger is the CLI's ambient structured logger: stderr, info level by
// default, matching the MCP server's own use of logrus.
var cmdLogger = newCmdLogger()

func newCmdLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}
