package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/storage"
)

type Report struct {
	Run     *storage.RunMetadata `json:"run"`
	Steps   int                  `json:"steps"`
	Samples []dynamo.Sample      `json:"samples"`
}

// WriteJSON writes a run report with its samples to w.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, samples []dynamo.Sample) error {
	data := Report{
		Run:     meta,
		Steps:   len(samples),
		Samples: samples,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta *storage.RunMetadata, samples []dynamo.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, meta, samples); err != nil {
		return err
	}
	return file.Close()
}

// ExportCSV writes samples in the trajectory.csv layout.
func ExportCSV(path string, samples []dynamo.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := storage.WriteSamples(file, samples); err != nil {
		return err
	}
	return file.Close()
}
