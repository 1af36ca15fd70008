// ABOUTME: Trail and hike records exchanged with the trail service
// ABOUTME: Trace fields are GeoJSON or explicit null; unknown fields pass through untouched

package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/harper/trailbook/internal/geojson"
)

// Trace field names on the wire. These are fixed by the service.
const (
	FieldDogTrace    = "dogTrace"
	FieldRunnerTrace = "runnerTrace"
	FieldDogTrack    = "dogTrack"
	FieldUserTrack   = "userTrack"
)

// Trail is a mantrailing session: the runner lays a trail, the dog follows it.
type Trail struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	DogTrace    json.RawMessage `json:"dogTrace"`
	RunnerTrace json.RawMessage `json:"runnerTrace"`

	// Extra holds fields this client does not model, so updates keep them.
	Extra map[string]json.RawMessage `json:"-"`
}

// Hike is a walk where both the dog and the handler were tracked.
type Hike struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	DogTrack  json.RawMessage `json:"dogTrack"`
	UserTrack json.RawMessage `json:"userTrack"`

	Extra map[string]json.RawMessage `json:"-"`
}

type trailFields Trail
type hikeFields Hike

func (t Trail) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(trailFields(normalizeTrail(t)), t.Extra)
}

func (t *Trail) UnmarshalJSON(data []byte) error {
	var f trailFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "name", FieldDogTrace, FieldRunnerTrace)
	if err != nil {
		return err
	}
	*t = Trail(f)
	t.Extra = extra
	return nil
}

func (h Hike) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(hikeFields(normalizeHike(h)), h.Extra)
}

func (h *Hike) UnmarshalJSON(data []byte) error {
	var f hikeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, "id", "name", FieldDogTrack, FieldUserTrack)
	if err != nil {
		return err
	}
	*h = Hike(f)
	h.Extra = extra
	return nil
}

// normalizeTrail makes empty trace fields encode as null.
func normalizeTrail(t Trail) Trail {
	t.DogTrace = nullIfEmpty(t.DogTrace)
	t.RunnerTrace = nullIfEmpty(t.RunnerTrace)
	return t
}

func normalizeHike(h Hike) Hike {
	h.DogTrack = nullIfEmpty(h.DogTrack)
	h.UserTrack = nullIfEmpty(h.UserTrack)
	return h
}

var jsonNull = json.RawMessage("null")

func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return jsonNull
	}
	return raw
}

// IsNull reports whether a trace field is absent or JSON null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	merged := make(map[string]json.RawMessage, len(extra)+4)
	for k, v := range extra {
		merged[k] = v
	}
	// Modeled fields win over stale extras with the same key.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func splitExtra(data []byte, known ...string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// EncodeTrace encodes a trace field value. A nil collection encodes as null.
func EncodeTrace(fc *geojson.FeatureCollection) (json.RawMessage, error) {
	data, err := geojson.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("encode trace: %w", err)
	}
	return data, nil
}

// DecodeTrace decodes a trace field value. Null yields a nil collection.
func DecodeTrace(raw json.RawMessage) (*geojson.FeatureCollection, error) {
	if IsNull(raw) {
		return nil, nil
	}
	fc, err := geojson.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return fc, nil
}
