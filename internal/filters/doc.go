// Copyright (c) 2026 The tryphon Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a text dataset by --filter expressions.
//
// An expression is key, optional operator and target. Several expressions are
// separated by a comma, or by TRYPHON_FILTER_DELIM when values contain commas.
// A row is kept only if it matches all of them.
//
// Operators, each negated with a leading '!':
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains
//   - / : regular expression match
//
// A key with no operator keeps rows where that column is set and not false.
//
// Examples:
//
//   - "field^database." : fields of the database group
//   - "secret" : secret fields only
//   - "env@PORT" : fields read from a variable named PORT
//   - "type!=string" : everything that is not a string
package filters
