package collection

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjex-salaj/site-api/internal/models"
)

func TestCodecEncodeWrapsAndIndents(t *testing.T) {
	codec := NewCodec[models.Person]("person", nil)

	order := 3
	data, err := codec.Encode(&models.Person{Name: "Popescu Ion", Position: "Director", Order: &order})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"person\": {"))

	var doc map[string]models.Person
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "person")
	assert.Equal(t, "Popescu Ion", doc["person"].Name)
	require.NotNil(t, doc["person"].Order)
	assert.Equal(t, 3, *doc["person"].Order)
}

func TestCodecDecode(t *testing.T) {
	codec := NewCodec[models.Person]("person", nil)

	t.Run("round trip", func(t *testing.T) {
		data, err := codec.Encode(&models.Person{Name: "Ionescu Maria", Position: "Director adjunct"})
		require.NoError(t, err)

		person, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, "Ionescu Maria", person.Name)
		assert.Nil(t, person.Order)
	})

	t.Run("missing wrapper key", func(t *testing.T) {
		_, err := codec.Decode([]byte(`{"name": "Ionescu Maria"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing wrapper key")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := codec.Decode([]byte(`{"person": {`))
		assert.Error(t, err)
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := codec.Decode([]byte(`{"person": {"name": "No Position"}}`))
		assert.Error(t, err)
	})
}

func TestCodecValidate(t *testing.T) {
	codec := NewCodec[models.ClassAdvisor]("diriginte", nil)

	assert.NoError(t, codec.Validate(&models.ClassAdvisor{Name: "Popescu Ion", Class: "9A", Room: "101"}))
	assert.Error(t, codec.Validate(&models.ClassAdvisor{Name: "Popescu Ion"}))
	assert.Error(t, codec.Validate(nil))
}
