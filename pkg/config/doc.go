// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads strongly-typed configuration structs from environment
// variables.
//
// A configuration type declares its fields once by implementing Fielder:
//
//	type AppConfig struct {
//		DatabaseURL string
//		APIKey      secret.Secret[string]
//		Port        uint16
//		LogLevel    *string
//	}
//
//	func (c *AppConfig) Fields(s *config.Schema) {
//		config.Field(s, "database_url", &c.DatabaseURL, decode.String).Env("DATABASE_URL")
//		config.Secret(s, "api_key", &c.APIKey, decode.String).Env("API_KEY")
//		config.Field(s, "port", &c.Port, decode.Uint[uint16]).Env("APP_PORT", "PORT").Default(8080)
//		config.Optional(s, "log_level", &c.LogLevel, decode.OneOf("error", "info", "debug"))
//	}
//
//	cfg, err := config.Load[AppConfig](source.OS())
//
// Load visits every field before returning. When anything fails, the
// returned *Error lists every missing variable, every value that could not be
// decoded and every value rejected by a Validate hook, so an operator can
// fix them all in one go. A failed Load never hands out a partially populated
// value.
//
// Secret fields are wrapped in secret.Secret. Error output never contains the
// raw value of a secret field; the redacted placeholder is shown instead.
// Printing the whole configuration with fmt keeps secrets redacted whether
// or not the field holding them is exported.
package config
