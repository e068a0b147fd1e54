package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/trajsim/internal/dynamo"
)

type Data struct {
	Preset     string                   `json:"preset,omitempty"`
	Params     dynamo.ControlParameters `json:"params"`
	Dt         float64                  `json:"dt"`
	StopReason string                   `json:"stop_reason"`
	Steps      int                      `json:"steps"`
	Times      []float64                `json:"times"`
	Positions  [][2]float64             `json:"positions"`
	Velocities [][2]float64             `json:"velocities"`
	Metrics    map[string]float64       `json:"metrics"`
}

func NewData(preset string, params dynamo.ControlParameters, result *dynamo.Result) Data {
	data := Data{
		Preset:     preset,
		Params:     params,
		Dt:         dynamo.Dt,
		StopReason: result.StopReason.String(),
		Steps:      result.Steps,
		Times:      make([]float64, len(result.States)),
		Positions:  make([][2]float64, len(result.States)),
		Velocities: make([][2]float64, len(result.States)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.States {
		data.Times[i] = s.Elapsed
		data.Positions[i] = [2]float64{s.Position.X, s.Position.Y}
		data.Velocities[i] = [2]float64{s.Velocity.X, s.Velocity.Y}
	}
	return data
}

func WriteJSON(w io.Writer, data Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

var csvHeader = []string{"time", "x", "y", "vx", "vy"}

// WriteCSV writes one row per state with a time,x,y,vx,vy header.
func WriteCSV(w io.Writer, states []dynamo.KinematicState) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range states {
		row := []string{
			strconv.FormatFloat(s.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(s.Position.X, 'f', 6, 64),
			strconv.FormatFloat(s.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Velocity.X, 'f', 6, 64),
			strconv.FormatFloat(s.Velocity.Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV back into states. Rows that do not
// parse, or that hold NaN or Inf, are skipped.
func ReadCSV(r io.Reader) ([]dynamo.KinematicState, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamo.KinematicState{}, nil
	}

	states := make([]dynamo.KinematicState, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(csvHeader) {
			continue
		}
		var vals [5]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		s := dynamo.KinematicState{
			Elapsed:  vals[0],
			Position: dynamo.Vec2{X: vals[1], Y: vals[2]},
			Velocity: dynamo.Vec2{X: vals[3], Y: vals[4]},
		}
		if !s.IsValid() {
			continue
		}
		states = append(states, s)
	}

	return states, nil
}
