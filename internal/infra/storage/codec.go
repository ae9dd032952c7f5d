// Package storage holds what the storage backends share: the JSON form of
// an instance and flush instrumentation.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/infra/metrics"
)

// ClassField names the class of a stored instance.
const ClassField = domain.AttrClass

// Field is one member of a JSON object, kept in document order.
type Field struct {
	Name string
	Raw  json.RawMessage
}

// Encode renders inst as a flat JSON object: class, id, timestamps, then
// the assigned attributes in assignment order.
func Encode(inst *domain.Instance) ([]byte, error) {
	fields := []Field{
		{Name: ClassField, Raw: mustString(inst.Class.Name)},
		{Name: domain.AttrID, Raw: mustString(inst.ID)},
		{Name: domain.AttrCreatedAt, Raw: mustString(inst.CreatedAt.Format(domain.TimeLayout))},
		{Name: domain.AttrUpdatedAt, Raw: mustString(inst.UpdatedAt.Format(domain.TimeLayout))},
	}
	for _, a := range inst.Attrs() {
		raw, err := json.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", inst.Key(), a.Name, err)
		}
		fields = append(fields, Field{Name: a.Name, Raw: raw})
	}
	return WriteObject(fields), nil
}

// Decode rebuilds an instance from the output of Encode.
func Decode(data []byte, reg domain.Registry) (*domain.Instance, error) {
	fields, err := ReadObject(json.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	var (
		className, id        string
		createdAt, updatedAt time.Time
		attrs                []domain.Attr
	)
	for _, f := range fields {
		switch f.Name {
		case ClassField:
			err = json.Unmarshal(f.Raw, &className)
		case domain.AttrID:
			err = json.Unmarshal(f.Raw, &id)
		case domain.AttrCreatedAt:
			createdAt, err = decodeTime(f.Raw)
		case domain.AttrUpdatedAt:
			updatedAt, err = decodeTime(f.Raw)
		default:
			var v domain.Value
			err = json.Unmarshal(f.Raw, &v)
			attrs = append(attrs, domain.Attr{Name: f.Name, Value: v})
		}
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", domain.ErrCorruptRecord, f.Name, err)
		}
	}

	if className == "" || id == "" {
		return nil, fmt.Errorf("%w: missing %s or %s", domain.ErrCorruptRecord, ClassField, domain.AttrID)
	}
	cls, ok := reg.Resolve(className)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStoredClass, className)
	}
	return cls.Restore(id, createdAt, updatedAt, attrs), nil
}

func decodeTime(raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(domain.TimeLayout, s)
}

// ReadObject reads one JSON object from dec, keeping member order.
func ReadObject(dec *json.Decoder) ([]Field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected object", domain.ErrCorruptRecord)
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected member name", domain.ErrCorruptRecord)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: member %s: %v", domain.ErrCorruptRecord, name, err)
		}
		fields = append(fields, Field{Name: name, Raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	return fields, nil
}

// WriteObject renders fields as a compact JSON object in the given order.
func WriteObject(fields []Field) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(mustString(f.Name))
		buf.WriteByte(':')
		buf.Write(f.Raw)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func mustString(s string) json.RawMessage {
	b, _ := json.Marshal(s) // strings always marshal
	return b
}

// ─── Instrumentation ────────────────────────────────────────────────────────

// RecordFlush reports one write to durable storage.
func RecordFlush(backend, scope string, start time.Time, instances int) {
	metrics.StorageFlushes.WithLabelValues(backend, scope).Inc()
	metrics.StorageFlushLatency.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	metrics.Instances.Set(float64(instances))
}
