package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/dynamo"
)

type ExportData struct {
	Preset     string              `json:"preset,omitempty"`
	Input      string              `json:"input,omitempty"`
	Dimension  int                 `json:"dimension"`
	Integrator string              `json:"integrator"`
	Dt         float64             `json:"dt"`
	Ticks      int                 `json:"ticks"`
	Merges     int                 `json:"merges"`
	Frames     []dynamo.FrameState `json:"frames"`
	Metrics    map[string]float64  `json:"metrics"`
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per body per frame. The body column holds the
// load-time ID from rec, so a body keeps its ID after earlier bodies merge.
func WriteCSV(w io.Writer, rec *Recorder, dim int) error {
	if dim != 2 && dim != 3 {
		return fmt.Errorf("dimension must be 2 or 3, got %d", dim)
	}
	cw := csv.NewWriter(w)

	axes := []string{"x", "y", "z"}[:dim]
	header := []string{"tick", "time", "body", "mass"}
	header = append(header, axes...)
	for _, a := range axes {
		header = append(header, "v"+a)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for k, f := range rec.Frames() {
		ids := rec.IDs(k)
		for i, b := range f.Bodies {
			if len(b.Pos) != dim || len(b.Vel) != dim {
				return fmt.Errorf("%w: frame %d body %d", dynamo.ErrDimensionMismatch, f.Tick, i)
			}
			row := []string{
				strconv.Itoa(f.Tick),
				strconv.FormatFloat(f.Time, 'f', 6, 64),
				strconv.Itoa(ids[i]),
				strconv.FormatFloat(b.Mass, 'f', 6, 64),
			}
			for _, v := range b.Pos {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
			for _, v := range b.Vel {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
