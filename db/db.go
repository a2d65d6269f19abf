// Package db carries the relational contract of the scoring backend as a
// reference artifact. The match client itself never touches a database.
package db

import _ "embed"

//go:embed schema.sql
var Schema string
