package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() *Request {
	return &Request{
		Environment: "development",
		Source: Source{
			Type: "csv",
			Path: "testdata/people.csv",
		},
		Destination: Destination{
			Type:  "sqlite",
			Table: "people",
			Mode:  "replace",
		},
	}
}

func TestValidateOK(t *testing.T) {
	assert.Empty(t, validRequest().Validate())
}

func TestValidateMissingSourcePath(t *testing.T) {
	req := validRequest()
	req.Source.Path = ""

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "source.path")
}

func TestValidateUnsupportedSourceType(t *testing.T) {
	req := validRequest()
	req.Source.Type = "parquet"

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "source.type")
}

func TestValidateEmptySourceTypeAllowed(t *testing.T) {
	req := validRequest()
	req.Source.Type = ""

	assert.Empty(t, req.Validate())
}

func TestValidateMissingDestinationType(t *testing.T) {
	req := validRequest()
	req.Destination.Type = ""

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "destination.type")
}

func TestValidateUnsupportedDestinationType(t *testing.T) {
	req := validRequest()
	req.Destination.Type = "mongodb"

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "destination.type")
}

func TestValidateMissingTable(t *testing.T) {
	req := validRequest()
	req.Destination.Table = ""

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "destination.table")
}

func TestValidateBadMode(t *testing.T) {
	req := validRequest()
	req.Destination.Mode = "upsert"

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "destination.mode")
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	req := &Request{}

	fieldErrors := req.Validate()
	assert.Contains(t, fieldErrors, "source.path")
	assert.Contains(t, fieldErrors, "destination.type")
	assert.Contains(t, fieldErrors, "destination.table")
}
