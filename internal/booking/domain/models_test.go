package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDetailInt(t *testing.T) {
	svc := &PendingService{Details: datatypes.JSONMap{
		"from_storage": json.Number("2000"),
		"from_json":    float64(45),
		"in_memory":    30,
		"not_numeric":  "soon",
	}}

	// jsonb round-trips hand back json.Number.
	value, ok := svc.DetailInt("from_storage")
	assert.True(t, ok)
	assert.EqualValues(t, 2000, value)

	value, ok = svc.DetailInt("from_json")
	assert.True(t, ok)
	assert.EqualValues(t, 45, value)

	value, ok = svc.DetailInt("in_memory")
	assert.True(t, ok)
	assert.EqualValues(t, 30, value)

	_, ok = svc.DetailInt("not_numeric")
	assert.False(t, ok)

	_, ok = svc.DetailInt("missing")
	assert.False(t, ok)
}

func TestDetailString(t *testing.T) {
	svc := &PendingService{Details: datatypes.JSONMap{
		DetailStartTime: "09:00",
		"numeric":       30,
	}}

	value, ok := svc.DetailString(DetailStartTime)
	assert.True(t, ok)
	assert.Equal(t, "09:00", value)

	_, ok = svc.DetailString("numeric")
	assert.False(t, ok)

	_, ok = svc.DetailString("missing")
	assert.False(t, ok)
}
