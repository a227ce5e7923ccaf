// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package schema reads declarative field lists from YAML or HCL files and
// turns them into a config.Schema, so the CLI can check an environment
// without a compiled configuration type.
//
// YAML:
//
//	fields:
//	  - name: port
//	    env: [APP_PORT, PORT]
//	    type: uint16
//	    default: 8080
//	groups:
//	  - name: database
//	    fields:
//	      - name: password
//	        type: string
//	        secret: true
//
// HCL:
//
//	field "port" {
//	  env     = ["APP_PORT", "PORT"]
//	  type    = "uint16"
//	  default = 8080
//	}
//	group "database" {
//	  field "password" {
//	    type   = "string"
//	    secret = true
//	  }
//	}
package schema
