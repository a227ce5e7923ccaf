// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config_test

import (
	"fmt"

	"github.com/katlasik/tryphon/pkg/config"
	"github.com/katlasik/tryphon/pkg/decode"
	"github.com/katlasik/tryphon/pkg/secret"
	"github.com/katlasik/tryphon/pkg/source"
)

type serverConfig struct {
	DatabaseURL string
	APIKey      secret.Secret[string]
	Port        uint16
}

func (c *serverConfig) Fields(s *config.Schema) {
	config.Field(s, "database_url", &c.DatabaseURL, decode.String)
	config.Secret(s, "api_key", &c.APIKey, decode.String)
	config.Field(s, "port", &c.Port, decode.Uint[uint16]).Default(8080)
}

func ExampleLoad() {
	cfg, err := config.Load[serverConfig](source.Map{
		"DATABASE_URL": "http://localhost:5432",
		"API_KEY":      "qwerty",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.DatabaseURL, cfg.Port, cfg.APIKey.Expose())
	// Output: http://localhost:5432 8080 qwerty
}

func ExampleError_Print() {
	_, err := config.Load[serverConfig](source.Map{"PORT": "http"})
	fmt.Println(err)
	// Output:
	// Found 3 configuration error(s):
	// Missing value for field 'database_url', tried env vars: DATABASE_URL
	// Missing value for field 'api_key', tried env vars: API_KEY
	// Parsing error for env var 'PORT' for field 'port': invalid unsigned integer syntax (raw value: http)
}
