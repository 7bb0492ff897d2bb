// Package schemas embeds the JSON Schemas used to validate configuration
// files before they are decoded.
package schemas

import _ "embed"

// ExperimentSchemaJSON is the schema for experiment.yaml files.
//
//go:embed experiment.schema.json
var ExperimentSchemaJSON string
