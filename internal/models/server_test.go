package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerRecord_ContainerName(t *testing.T) {
	record := &ServerRecord{ID: "abc-123"}
	assert.Equal(t, "waitress-abc-123", record.ContainerName())
}

