/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/kyokomi/emoji"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger *DdcLogger = nil

type DdcLogger struct {
	Config *specs.DdcConfig
	Logger *zap.Logger
	Aurora aurora.Aurora
}

func NewDdcLogger(config *specs.DdcConfig) *DdcLogger {
	return &DdcLogger{
		Config: config,
		Logger: nil,
		Aurora: aurora.NewAurora(config.GetLogging().Color),
	}
}

func GetDefaultLogger() *DdcLogger {
	if defaultLogger == nil {
		defaultLogger = NewDdcLogger(specs.NewDefaultDdcConfig())
	}
	return defaultLogger
}

func (l *DdcLogger) SetAsDefault() {
	defaultLogger = l
}

func (l *DdcLogger) GetAurora() aurora.Aurora { return l.Aurora }

func (l *DdcLogger) InitLogger2File() error {
	var err error

	// TODO: test permission for open logfile.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{l.Config.GetLogging().Path}
	cfg.Level = level2AtomicLevel(l.Config.GetLogging().Level)
	cfg.ErrorOutputPaths = []string{}
	if l.Config.GetLogging().JsonFormat {
		cfg.Encoding = "json"
	} else {
		cfg.Encoding = "console"
	}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	err = os.MkdirAll(filepath.Dir(l.Config.GetLogging().Path), 0755)
	if err != nil {
		return err
	}

	l.Logger, err = cfg.Build()
	if err != nil {
		fmt.Fprint(os.Stderr, "Error on initialize file logger: "+err.Error()+"\n")
		return err
	}

	return nil
}

func level2Number(level string) int {
	switch level {
	case "error":
		return 0
	case "warning":
		return 1
	case "info":
		return 2
	default:
		return 3
	}
}

func level2AtomicLevel(level string) zap.AtomicLevel {
	switch level {
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	case "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
}

func (l *DdcLogger) log2File(level, msg string) {
	if l.Logger == nil {
		return
	}

	switch level {
	case "error":
		l.Logger.Error(msg)
	case "warning":
		l.Logger.Warn(msg)
	case "info":
		l.Logger.Info(msg)
	default:
		l.Logger.Debug(msg)
	}
}

// ToFile writes the message only on the logfile, tagged with the
// source stream.
func (l *DdcLogger) ToFile(level, stream, msg string) {
	if l.Logger == nil || msg == "" {
		return
	}
	l.log2File(level, "["+stream+"] "+msg)
}

// Msg prints the message on console and on the logfile.
// With withoutColor the message is printed as is.
// With ln a newline is appended.
func (l *DdcLogger) Msg(level string, withoutColor, ln bool, msg ...interface{}) {
	var message string
	var confLevel, msgLevel int

	if l.Config.GetGeneral().HasDebug() {
		confLevel = 3
	} else {
		confLevel = level2Number(l.Config.GetLogging().Level)
	}
	msgLevel = level2Number(level)
	if msgLevel > confLevel {
		return
	}

	parts := make([]string, 0, len(msg))
	for _, m := range msg {
		parts = append(parts, fmt.Sprintf("%v", m))
	}
	message = strings.Join(parts, " ")

	if l.Config.GetLogging().EnableEmoji {
		message = emoji.Sprint(message)
	} else {
		message = strings.TrimSpace(emoji.Sprint(message))
	}

	var levelMsg string

	if withoutColor || !l.Config.GetLogging().Color {
		levelMsg = message
	} else {
		switch level {
		case "warning":
			levelMsg = fmt.Sprintf("%s", l.Aurora.Bold(l.Aurora.Yellow(":construction: "+message)))
		case "debug":
			levelMsg = fmt.Sprintf("%s", l.Aurora.White(message))
		case "info":
			levelMsg = message
		case "error":
			levelMsg = fmt.Sprintf("%s", l.Aurora.Bold(l.Aurora.Red(":bomb: "+message)))
		}
		levelMsg = emoji.Sprint(levelMsg)
	}

	out := os.Stdout
	if level == "error" {
		out = os.Stderr
	}

	if ln {
		fmt.Fprintln(out, levelMsg)
	} else {
		fmt.Fprint(out, levelMsg)
	}

	l.log2File(level, message)
}

func (l *DdcLogger) Warning(mess ...interface{}) {
	l.Msg("warning", false, true, mess...)
}

func (l *DdcLogger) Debug(mess ...interface{}) {
	l.Msg("debug", false, true, mess...)
}

func (l *DdcLogger) DebugC(mess ...interface{}) {
	l.Msg("debug", true, true, mess...)
}

func (l *DdcLogger) Info(mess ...interface{}) {
	l.Msg("info", false, true, mess...)
}

func (l *DdcLogger) InfoC(mess ...interface{}) {
	l.Msg("info", true, true, mess...)
}

func (l *DdcLogger) Error(mess ...interface{}) {
	l.Msg("error", false, true, mess...)
}

func (l *DdcLogger) Fatal(mess ...interface{}) {
	l.Error(mess...)
	l.Sync()
	os.Exit(1)
}

func (l *DdcLogger) Sync() {
	if l.Logger != nil {
		_ = l.Logger.Sync()
	}
}
