package dto

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeaderNamed(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File["images"], 1)
	return form.File["images"][0]
}

func TestMapImageBatch_ConditionOnlyOnBaseline(t *testing.T) {
	files := []*multipart.FileHeader{
		fileHeaderNamed(t, "front.jpg", "front bytes"),
		fileHeaderNamed(t, "side.jpg", "side bytes"),
	}

	inputs, err := MapImageBatch(files, []string{"Baseline", "Maintenance"}, []string{"Sunny", "Rainy"})
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "front.jpg", inputs[0].FileName)
	assert.Equal(t, []byte("front bytes"), inputs[0].Data)
	assert.Equal(t, entity.ImageTypeBaseline, inputs[0].Type)
	require.NotNil(t, inputs[0].WeatherCondition)
	assert.Equal(t, "Sunny", *inputs[0].WeatherCondition)

	assert.Equal(t, entity.ImageTypeMaintenance, inputs[1].Type)
	assert.Nil(t, inputs[1].WeatherCondition)
}

func TestMapImageBatch_ShortConditionListIsNotAnError(t *testing.T) {
	files := []*multipart.FileHeader{
		fileHeaderNamed(t, "a.jpg", "a"),
		fileHeaderNamed(t, "b.jpg", "b"),
	}

	inputs, err := MapImageBatch(files, []string{"Baseline", "Baseline"}, nil)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Nil(t, inputs[0].WeatherCondition)
	assert.Nil(t, inputs[1].WeatherCondition)

	inputs, err = MapImageBatch(files, []string{"Baseline", "Baseline"}, []string{"Cloudy"})
	require.NoError(t, err)
	require.NotNil(t, inputs[0].WeatherCondition)
	assert.Equal(t, "Cloudy", *inputs[0].WeatherCondition)
	assert.Nil(t, inputs[1].WeatherCondition)
}

func TestMapImageBatch_EmptyConditionDegradesToAbsent(t *testing.T) {
	files := []*multipart.FileHeader{fileHeaderNamed(t, "a.jpg", "a")}

	inputs, err := MapImageBatch(files, []string{"Baseline"}, []string{""})
	require.NoError(t, err)
	assert.Nil(t, inputs[0].WeatherCondition)
}

func TestMapImageBatch_RejectsMismatchedLengths(t *testing.T) {
	files := []*multipart.FileHeader{fileHeaderNamed(t, "a.jpg", "a")}

	_, err := MapImageBatch(files, []string{"Baseline", "Baseline"}, nil)
	assert.Error(t, err)

	_, err = MapImageBatch(files, nil, nil)
	assert.Error(t, err)
}

func TestMapImageBatch_RejectsUnknownType(t *testing.T) {
	files := []*multipart.FileHeader{fileHeaderNamed(t, "a.jpg", "a")}

	_, err := MapImageBatch(files, []string{"Thermal"}, nil)
	assert.Error(t, err)
}

func TestMapMaintenanceBatch(t *testing.T) {
	files := []*multipart.FileHeader{
		fileHeaderNamed(t, "scan-0.jpg", "zero"),
		fileHeaderNamed(t, "scan-1.jpg", "one"),
	}

	inputs, err := MapMaintenanceBatch(files)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	for i, input := range inputs {
		assert.Equal(t, entity.ImageTypeMaintenance, input.Type)
		assert.Nil(t, input.WeatherCondition)
		assert.Equal(t, files[i].Filename, input.FileName)
	}
}
