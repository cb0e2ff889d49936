// Package state implements the state serializer (C10): the exact JSON
// shape spec §6 names (`params`, `ta_state`, optional `signs`, optional
// `weights`, `igen`, `fgen`), with unknown top-level keys rejected the
// same way params decoding rejects unknown hyperparameter keys.
package state

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
)

// TAState is the wire shape of tastate.State's counter matrix.
type TAState struct {
	Width int     `json:"width"`
	Data  [][]int32 `json:"data"`
}

// Signs is the wire shape of tastate.State's bitwise sign mirror.
type Signs struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Blocks []uint64 `json:"blocks"`
}

// Gen is the wire shape of one PRNG's snapshot (rng.IntRNG or
// rng.FloatRNG).
type Gen struct {
	Index uint   `json:"index"`
	RES   []uint `json:"RES"`
	MT    []uint `json:"MT"`
}

// Document is the full on-disk shape: object with keys params,
// ta_state, optional signs, optional weights, igen, fgen. Params is
// kept as a raw JSON object since params.Classifier and params.Regressor
// are distinct types decoded independently by the caller.
type Document struct {
	Params  json.RawMessage `json:"params"`
	TAState TAState         `json:"ta_state"`
	Signs   *Signs          `json:"signs,omitempty"`
	Weights []int32         `json:"weights,omitempty"`
	IGen    Gen             `json:"igen"`
	FGen    Gen             `json:"fgen"`
}

// EncodeTAState captures s's counters (and, if present, signs/weights)
// into their wire shapes.
func EncodeTAState(s *tastate.State) (TAState, *Signs, []int32) {
	rows, cols := s.Rows(), s.Cols()
	data := make([][]int32, rows)
	for r := 0; r < rows; r++ {
		row := make([]int32, cols)
		for k := 0; k < cols; k++ {
			row[k] = s.Get(r, k)
		}
		data[r] = row
	}

	ta := TAState{Width: int(s.Width()), Data: data}

	var signs *Signs
	if s.HasSigns() {
		signs = &Signs{Rows: rows, Cols: cols, Blocks: s.Signs.RawBlocks()}
	}

	var weights []int32
	if s.HasWeights() {
		weights = append([]int32(nil), s.Weights...)
	}

	return ta, signs, weights
}

// EncodeGen captures an IntRNG's snapshot into its wire shape.
func EncodeGen(r *rng.IntRNG) Gen {
	index, res, mt := r.Snapshot()
	return Gen{Index: index, RES: res, MT: mt}
}

// EncodeFloatGen captures a FloatRNG's snapshot into its wire shape.
func EncodeFloatGen(f *rng.FloatRNG) Gen {
	index, res, mt := f.Snapshot()
	return Gen{Index: index, RES: res, MT: mt}
}

// DecodeTAState rebuilds a tastate.State from its wire shape. weighted
// and maxWeight come from the caller's already-decoded params, since
// the wire shape's optional "weights" key alone doesn't carry
// max_weight. numberOfStates likewise comes from params.
func DecodeTAState(ta TAState, signs *Signs, weights []int32, numberOfStates int, weighted bool, maxWeight int32) (*tastate.State, error) {
	if len(ta.Data) == 0 {
		return nil, errors.New("ta_state.data is empty")
	}
	width := tastate.Width(ta.Width)
	if width != tastate.Width8 && width != tastate.Width16 && width != tastate.Width32 {
		return nil, errors.Errorf("ta_state.width %d is not one of 1, 2, 4", ta.Width)
	}

	rows := len(ta.Data)
	cols := len(ta.Data[0])
	numberOfClauses := rows / 2

	s := tastate.New(width, numberOfClauses, cols, numberOfStates, signs != nil, weighted, maxWeight)

	for r, row := range ta.Data {
		if len(row) != cols {
			return nil, errors.Errorf("ta_state.data row %d has %d columns, want %d", r, len(row), cols)
		}
		for k, v := range row {
			s.SetCounter(r, k, v)
		}
	}

	if signs != nil {
		bm, err := align.BitMatrixFromBlocks(signs.Rows, signs.Cols, align.DefaultAlignment, signs.Blocks)
		if err != nil {
			return nil, errors.Wrap(err, "decode signs")
		}
		s.Signs = bm
	}

	if weighted {
		if len(weights) != numberOfClauses {
			return nil, errors.Errorf("weights has %d entries, want %d", len(weights), numberOfClauses)
		}
		copy(s.Weights, weights)
	}

	return s, nil
}

// DecodeGen rebuilds an IntRNG from its wire shape.
func DecodeGen(g Gen) *rng.IntRNG {
	return rng.Restore(g.Index, g.RES, g.MT)
}

// DecodeFloatGen rebuilds a FloatRNG from its wire shape.
func DecodeFloatGen(g Gen) *rng.FloatRNG {
	return rng.RestoreFloat(g.Index, g.RES, g.MT)
}

// Marshal encodes a Document, rejecting nothing itself (encoding never
// produces unknown keys); callers assemble Document via EncodeTAState/
// EncodeGen/EncodeFloatGen and their already-serialized params.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// Unmarshal decodes a Document, rejecting any top-level key that is not
// one of params/ta_state/signs/weights/igen/fgen (spec §6: "unknown
// top-level keys are rejected").
func Unmarshal(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errors.Wrap(err, "decode state document")
	}
	return doc, nil
}
