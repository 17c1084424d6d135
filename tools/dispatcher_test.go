package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/world"
)

// fakeGeocoder returns a fixed candidate or error.
type fakeGeocoder struct {
	candidate geocode.Candidate
	err       error
	calls     int
}

func (f *fakeGeocoder) Lookup(ctx context.Context, address string) (geocode.Candidate, error) {
	f.calls++
	if f.err != nil {
		return geocode.Candidate{}, f.err
	}
	return f.candidate, nil
}

func newTestDispatcher(t *testing.T, geocoder geocode.Client) (*Dispatcher, *world.State) {
	t.Helper()
	state := world.New([2]float64{0, 0}, 2)
	if geocoder == nil {
		geocoder = &fakeGeocoder{}
	}
	return NewMapDispatcher(state, geocoder), state
}

func call(name, args string) model.ToolCall {
	return model.ToolCall{ID: "t1", Name: name, Arguments: json.RawMessage(args), Origin: model.OriginStructured}
}

func TestDispatchUnknownTool(t *testing.T) {
	d, state := newTestDispatcher(t, nil)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call("launch_rocket", `{}`))
	if result.OK() {
		t.Fatal("expected error result for unknown tool")
	}
	if result.Message != "unknown tool: launch_rocket" {
		t.Errorf("message = %q", result.Message)
	}
	if state.Snapshot() != before {
		t.Error("unknown tool mutated world state")
	}
}

func TestDispatchMissingRequiredArgument(t *testing.T) {
	d, state := newTestDispatcher(t, nil)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": 40.7}`))
	if result.OK() {
		t.Fatal("expected error result for missing longitude")
	}
	if state.Snapshot() != before {
		t.Error("schema violation mutated world state")
	}
}

func TestDispatchMalformedArgumentPayload(t *testing.T) {
	d, state := newTestDispatcher(t, nil)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call(NavigateName, `not json`))
	if result.OK() {
		t.Fatal("expected error result for malformed payload")
	}
	if state.Snapshot() != before {
		t.Error("malformed payload mutated world state")
	}
}

func TestDispatchMalformedArgumentType(t *testing.T) {
	d, state := newTestDispatcher(t, nil)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": "north", "longitude": 0}`))
	if result.OK() {
		t.Fatal("expected error result for non-numeric latitude")
	}
	if state.Snapshot() != before {
		t.Error("type violation mutated world state")
	}
}

func TestNavigateSetsCenterLonLat(t *testing.T) {
	d, state := newTestDispatcher(t, nil)

	result := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": 40.7128, "longitude": -74.006}`))
	if !result.OK() {
		t.Fatalf("unexpected error: %s", result.Message)
	}
	want := [2]float64{-74.006, 40.7128}
	if result.State.Center != want {
		t.Errorf("center = %v, want %v", result.State.Center, want)
	}

	// Idempotent: same call, same state.
	again := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": 40.7128, "longitude": -74.006}`))
	if again.State != result.State {
		t.Errorf("repeated navigate changed state: %+v != %+v", again.State, result.State)
	}
	_ = state
}

func TestNavigateDoesNotEnforceAdvertisedRanges(t *testing.T) {
	// The schema advertises [-90,90]/[-180,180] but dispatch accepts any
	// finite pair. Flagged ambiguity; the behavior is pinned here so a
	// future change is a conscious one.
	d, _ := newTestDispatcher(t, nil)

	result := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": 200, "longitude": -500}`))
	if !result.OK() {
		t.Fatalf("out-of-range coordinates rejected: %s", result.Message)
	}
	if result.State.Center != [2]float64{-500, 200} {
		t.Errorf("center = %v, want [-500 200]", result.State.Center)
	}
}

func TestZoomClamps(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"0", 0},
		{"10", 10},
		{"20", 20},
		{"99", 20},
		{"-3", 0},
	}
	for _, tt := range tests {
		d, _ := newTestDispatcher(t, nil)
		result := d.Dispatch(context.Background(), call(ZoomName, `{"zoom_level": `+tt.level+`}`))
		if !result.OK() {
			t.Fatalf("zoom_to_level(%s) errored: %s", tt.level, result.Message)
		}
		if result.State.Zoom != tt.want {
			t.Errorf("zoom_to_level(%s) stored %d, want %d", tt.level, result.State.Zoom, tt.want)
		}
	}
}

func TestZoomAcceptsNumericString(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	result := d.Dispatch(context.Background(), call(ZoomName, `{"zoom_level": "12"}`))
	if !result.OK() {
		t.Fatalf("unexpected error: %s", result.Message)
	}
	if result.State.Zoom != 12 {
		t.Errorf("zoom = %d, want 12", result.State.Zoom)
	}
}

func TestGeocodeSuccessNavigates(t *testing.T) {
	geocoder := &fakeGeocoder{candidate: geocode.Candidate{
		Latitude:  51.5074,
		Longitude: -0.1278,
		Score:     97,
		Address:   "London, England",
	}}
	d, _ := newTestDispatcher(t, geocoder)

	result := d.Dispatch(context.Background(), call(GeocodeName, `{"address": "London"}`))
	if !result.OK() {
		t.Fatalf("unexpected error: %s", result.Message)
	}
	if result.State.Center != [2]float64{-0.1278, 51.5074} {
		t.Errorf("center = %v", result.State.Center)
	}
	if result.State.Zoom != 15 {
		t.Errorf("zoom = %d, want 15", result.State.Zoom)
	}
	if result.Coordinates == nil {
		t.Fatal("expected coordinates on geocode result")
	}
	if result.Coordinates.Confidence != 97 || result.Coordinates.FormattedAddress != "London, England" {
		t.Errorf("coordinates = %+v", result.Coordinates)
	}
}

func TestGeocodeNoCandidatesLeavesWorldUntouched(t *testing.T) {
	geocoder := &fakeGeocoder{err: geocode.ErrNoCandidates}
	d, state := newTestDispatcher(t, geocoder)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call(GeocodeName, `{"address": "nowhere"}`))
	if result.OK() {
		t.Fatal("expected error result")
	}
	if result.Message != "No location found for address: nowhere" {
		t.Errorf("message = %q", result.Message)
	}
	if state.Snapshot() != before {
		t.Error("failed geocode mutated world state")
	}
}

func TestGeocodeProviderErrorLeavesWorldUntouched(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("connection refused")}
	d, state := newTestDispatcher(t, geocoder)
	before := state.Snapshot()

	result := d.Dispatch(context.Background(), call(GeocodeName, `{"address": "London"}`))
	if result.OK() {
		t.Fatal("expected error result")
	}
	if state.Snapshot() != before {
		t.Error("provider error mutated world state")
	}
}

func TestGeocodeEmptyAddress(t *testing.T) {
	geocoder := &fakeGeocoder{}
	d, _ := newTestDispatcher(t, geocoder)

	result := d.Dispatch(context.Background(), call(GeocodeName, `{"address": "  "}`))
	if result.OK() {
		t.Fatal("expected error result for blank address")
	}
	if geocoder.calls != 0 {
		t.Error("blank address should not reach the provider")
	}
}

func TestSequentialCallsObserveEarlierMutations(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	first := d.Dispatch(context.Background(), call(NavigateName, `{"latitude": 35.6762, "longitude": 139.6503}`))
	second := d.Dispatch(context.Background(), call(ZoomName, `{"zoom_level": 14}`))

	if second.State.Center != first.State.Center {
		t.Errorf("zoom result lost the navigate mutation: %v", second.State.Center)
	}
	if second.State.Zoom != 14 {
		t.Errorf("zoom = %d, want 14", second.State.Zoom)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	state := world.New([2]float64{0, 0}, 2)
	d := NewDispatcher(state)
	if err := d.Register(NewZoomTool(state)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := d.Register(NewZoomTool(state)); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestSpecsRegistrationOrder(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	specs := d.Specs()
	want := []string{NavigateName, ZoomName, GeocodeName}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d", len(specs), len(want))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("specs[%d] = %s, want %s", i, specs[i].Name, name)
		}
	}
}
