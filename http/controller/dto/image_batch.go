package dto

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/provider"
)

// MapImageBatch collapses the parallel multipart sequences (files, type
// tags, optional weather conditions) into one ordered batch of image
// inputs. A weather condition applies only when the entry is Baseline and
// the condition list reaches that index; a short or absent condition list
// degrades to "no condition", never to an error.
func MapImageBatch(files []*multipart.FileHeader, types []string, weatherConditions []string) ([]provider.ImageInput, error) {
	if len(files) != len(types) {
		return nil, fmt.Errorf("images and types must have the same length (got %d and %d)", len(files), len(types))
	}

	inputs := make([]provider.ImageInput, 0, len(files))
	for i, fileHeader := range files {
		imageType := entity.ImageType(types[i])
		if imageType != entity.ImageTypeBaseline && imageType != entity.ImageTypeMaintenance {
			return nil, fmt.Errorf("unknown image type %q at position %d", types[i], i)
		}

		data, err := ReadFileHeader(fileHeader)
		if err != nil {
			return nil, err
		}

		var condition *string
		if imageType == entity.ImageTypeBaseline && i < len(weatherConditions) && weatherConditions[i] != "" {
			condition = &weatherConditions[i]
		}

		inputs = append(inputs, provider.ImageInput{
			Data:             data,
			FileName:         fileHeader.Filename,
			Type:             imageType,
			WeatherCondition: condition,
		})
	}

	return inputs, nil
}

// MapMaintenanceBatch builds inputs for inspection uploads, which carry no
// type or condition choices.
func MapMaintenanceBatch(files []*multipart.FileHeader) ([]provider.ImageInput, error) {
	inputs := make([]provider.ImageInput, 0, len(files))
	for _, fileHeader := range files {
		data, err := ReadFileHeader(fileHeader)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, provider.ImageInput{
			Data:     data,
			FileName: fileHeader.Filename,
			Type:     entity.ImageTypeMaintenance,
		})
	}
	return inputs, nil
}

func ReadFileHeader(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %q: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %q: %w", fileHeader.Filename, err)
	}
	return data, nil
}
