// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the command line tool settings from the environment
// and an optional .env file.
//
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/db47h/pulsesim"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables.
//
const (
	EnvLogLevel = "PULSESIM_LOG_LEVEL"
	EnvPresses  = "PULSESIM_PRESSES"
	EnvLimit    = "PULSESIM_LIMIT"
	EnvWorkers  = "PULSESIM_WORKERS"
	EnvSinks    = "PULSESIM_SINKS"
)

// Environment holds the settings.
//
type Environment struct {
	LogLevel zapcore.Level
	Presses  int
	Limit    uint64
	Workers  int
	Sinks    []string
}

// Default returns the default settings.
//
func Default() *Environment {
	return &Environment{
		LogLevel: zapcore.InfoLevel,
		Presses:  1000,
		Limit:    pulsesim.DefaultLimit,
		Sinks:    append([]string(nil), pulsesim.DefaultSinks...),
	}
}

// Load loads the given .env files, then reads the settings from the
// environment. Variables already set in the environment take precedence over
// .env files. Missing files are ignored.
//
func Load(files ...string) (*Environment, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				continue
			}
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	env := Default()
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		if err := env.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, errors.Wrapf(err, "%s", EnvLogLevel)
		}
	}
	if v, ok := os.LookupEnv(EnvPresses); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Errorf("%s: invalid press count %q", EnvPresses, v)
		}
		env.Presses = n
	}
	if v, ok := os.LookupEnv(EnvLimit); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", EnvLimit)
		}
		env.Limit = n
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Errorf("%s: invalid worker count %q", EnvWorkers, v)
		}
		env.Workers = n
	}
	if v, ok := os.LookupEnv(EnvSinks); ok {
		env.Sinks = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				env.Sinks = append(env.Sinks, s)
			}
		}
	}
	return env, nil
}

// Logger returns a development logger writing to stderr at the configured
// level.
//
func (e *Environment) Logger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(e.LogLevel)
	cfg.DisableStacktrace = e.LogLevel > zapcore.DebugLevel
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}
