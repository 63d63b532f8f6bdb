package transfer

import (
	"strings"

	"conveyor.dataloader.org/loaddb"
)

// Source describes where a transfer reads its data from.
type Source struct {
	Type string `json:"type" yaml:"type"` // csv or xlsx
	Path string `json:"path" yaml:"path"`
}

// Destination describes where a transfer writes its data to.
type Destination struct {
	Type       string            `json:"type" yaml:"type"` // sqlite, postgres, mysql or mssql
	Database   string            `json:"database" yaml:"database"`
	Connection loaddb.Connection `json:"connection" yaml:"connection"`
	Table      string            `json:"table" yaml:"table"`
	Mode       string            `json:"mode" yaml:"mode"` // fail, replace or append
}

// Request is a single transfer job: read the source file, load it into
// the destination table.
type Request struct {
	Environment string      `json:"environment" yaml:"environment"`
	Source      Source      `json:"source" yaml:"source"`
	Destination Destination `json:"destination" yaml:"destination"`
}

var sourceTypes = map[string]bool{
	"csv":  true,
	"xlsx": true,
}

var destinationTypes = map[string]bool{
	"sqlite":     true,
	"postgres":   true,
	"postgresql": true,
	"mysql":      true,
	"mssql":      true,
	"sqlserver":  true,
}

// Validate checks the request and returns a map of field name to error
// messages. An empty map means the request is valid.
func (r *Request) Validate() map[string][]string {
	fieldErrors := make(map[string][]string)

	if r.Source.Path == "" {
		fieldErrors["source.path"] = append(fieldErrors["source.path"], "path is required")
	}
	if r.Source.Type != "" && !sourceTypes[strings.ToLower(r.Source.Type)] {
		fieldErrors["source.type"] = append(fieldErrors["source.type"], "unsupported source type")
	}

	if r.Destination.Type == "" {
		fieldErrors["destination.type"] = append(fieldErrors["destination.type"], "type is required")
	} else if !destinationTypes[strings.ToLower(r.Destination.Type)] {
		fieldErrors["destination.type"] = append(fieldErrors["destination.type"], "unsupported destination type")
	}

	if r.Destination.Table == "" {
		fieldErrors["destination.table"] = append(fieldErrors["destination.table"], "table is required")
	}

	if _, err := loaddb.ParseWriteMode(r.Destination.Mode); err != nil {
		fieldErrors["destination.mode"] = append(fieldErrors["destination.mode"], err.Error())
	}

	return fieldErrors
}
