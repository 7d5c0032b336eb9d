// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"unicode"

	"github.com/naoina/toml"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/goxlang/gox/internal/docstore"
	"github.com/goxlang/gox/internal/goxapi"
	"github.com/goxlang/gox/params"
)

const defaultListenAddr = ":8931"

// These settings ensure that TOML keys use the same names as Go struct
// fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// goxConfig is the top-level TOML configuration.
type goxConfig struct {
	Serve serveConfig
}

// serveConfig configures the parse HTTP API.
type serveConfig struct {
	Addr         string
	CacheDir     string
	CacheEntries int
	CORSDomains  []string
}

func defaultConfig() goxConfig {
	return goxConfig{
		Serve: serveConfig{
			Addr:         defaultListenAddr,
			CacheEntries: 128,
			CORSDomains:  []string{"*"},
		},
	}
}

// loadConfigFile overlays the TOML file on cfg.
func loadConfigFile(file string, cfg *goxConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add the file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles defaults, the optional config file and flag overrides.
func makeConfig(ctx *cli.Context) goxConfig {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			fatalf("Error loading config: %v", err)
		}
	}
	if ctx.IsSet(addrFlag.Name) {
		cfg.Serve.Addr = ctx.String(addrFlag.Name)
	}
	return cfg
}

// ---------------------------------------------------------------------------
// API commands
// ---------------------------------------------------------------------------

var serveCommand = cli.Command{
	Action:    runServe,
	Name:      "serve",
	Usage:     "Run the parse HTTP API",
	ArgsUsage: " ",
	Category:  "API COMMANDS",
	Flags:     []cli.Flag{addrFlag},
	Description: `Serves POST /parse, GET /health and GET /version until interrupted.
Clean parse results are cached in memory and, when Serve.CacheDir is set,
persisted on disk.`,
}

var dumpConfigCommand = cli.Command{
	Action:    runDumpConfig,
	Name:      "dumpconfig",
	Usage:     "Show configuration values",
	ArgsUsage: " ",
	Category:  "API COMMANDS",
	Flags:     []cli.Flag{addrFlag},
}

func runServe(ctx *cli.Context) error {
	cfg := makeConfig(ctx)

	var store *docstore.Store
	if cfg.Serve.CacheEntries > 0 {
		var err error
		store, err = docstore.New(cfg.Serve.CacheEntries, cfg.Serve.CacheDir)
		if err != nil {
			fatalf("Error opening document cache: %v", err)
		}
		defer store.Close()
	}
	srv := goxapi.New(store, params.VersionWithMeta, os.Stdout)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Parse API listening on %s\n", cfg.Serve.Addr)
	if err := srv.ListenAndServe(sigCtx, cfg.Serve.Addr, cfg.Serve.CORSDomains); err != nil {
		fatalf("Error: %v", err)
	}
	return nil
}

func runDumpConfig(ctx *cli.Context) error {
	cfg := makeConfig(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
