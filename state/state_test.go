package state

import (
	"encoding/json"
	"testing"

	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
)

func TestTAStateRoundTripsWeightedAndSigned(t *testing.T) {
	orig := tastate.New(tastate.Width16, 3, 5, 1000, true, true, 7)
	orig.Init(rng.NewIntRNG(9))
	orig.IncrementClipped(0, 0)
	orig.IncrementWeight(1)

	ta, signs, weights := EncodeTAState(orig)
	decoded, err := DecodeTAState(ta, signs, weights, 1000, true, 7)
	if err != nil {
		t.Fatalf("DecodeTAState: %v", err)
	}
	if !orig.Equal(decoded) {
		t.Fatal("decoded TA state does not equal original")
	}
}

func TestTAStateRoundTripsUnweightedClassic(t *testing.T) {
	orig := tastate.New(tastate.Width8, 2, 4, 100, false, false, 0)
	orig.Init(rng.NewIntRNG(3))

	ta, signs, weights := EncodeTAState(orig)
	if signs != nil {
		t.Fatal("classic (no-signs) state should encode signs as nil")
	}
	decoded, err := DecodeTAState(ta, signs, weights, 100, false, 0)
	if err != nil {
		t.Fatalf("DecodeTAState: %v", err)
	}
	if !orig.Equal(decoded) {
		t.Fatal("decoded TA state does not equal original")
	}
}

func TestGenRoundTrips(t *testing.T) {
	irng := rng.NewIntRNG(42)
	irng.Next()
	irng.Next()

	g := EncodeGen(irng)
	restored := DecodeGen(g)
	if !irng.Equal(restored) {
		t.Fatal("restored IntRNG does not equal original")
	}
}

func TestFloatGenRoundTrips(t *testing.T) {
	frng := rng.NewFloatRNG(42)
	frng.Next()

	g := EncodeFloatGen(frng)
	restored := DecodeFloatGen(g)
	if !frng.Equal(restored) {
		t.Fatal("restored FloatRNG does not equal original")
	}
}

func TestUnmarshalRejectsUnknownTopLevelKey(t *testing.T) {
	raw := []byte(`{"params":{},"ta_state":{"width":1,"data":[[0]]},"igen":{"index":0,"RES":[],"MT":[]},"fgen":{"index":0,"RES":[],"MT":[]},"bogus":1}`)
	if _, err := Unmarshal(raw); err == nil {
		t.Fatal("expected error for unknown top-level key")
	}
}

func TestMarshalUnmarshalDocumentRoundTrips(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 2, 100, true, false, 0)
	s.Init(rng.NewIntRNG(1))
	ta, signs, weights := EncodeTAState(s)

	doc := Document{
		Params:  json.RawMessage(`{"threshold":15}`),
		TAState: ta,
		Signs:   signs,
		Weights: weights,
		IGen:    EncodeGen(rng.NewIntRNG(1)),
		FGen:    EncodeFloatGen(rng.NewFloatRNG(1)),
	}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.TAState.Width != ta.Width {
		t.Fatalf("width = %d, want %d", decoded.TAState.Width, ta.Width)
	}
}
