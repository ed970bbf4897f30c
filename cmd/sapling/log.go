package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

type rootCmdConfig struct {
	verbose bool
	log     *logrus.Logger
}

/*
Logf logs a progress message at debug level, shown when the verbose
flag is set. Library packages return errors and never log: every
progress line of the tool goes through here.
*/
func (c *rootCmdConfig) Logf(format string, a ...interface{}) {
	c.logger().Debugf(format, a...)
}

func (c *rootCmdConfig) logger() *logrus.Logger {
	if c.log == nil {
		c.log = logrus.New()
		c.log.SetOutput(os.Stderr)
		if c.verbose {
			c.log.SetLevel(logrus.DebugLevel)
		}
	}
	return c.log
}
