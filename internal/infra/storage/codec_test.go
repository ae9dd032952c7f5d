package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/model"
)

func TestEncode_FieldOrder(t *testing.T) {
	cls, _ := model.Default().Resolve(model.User)
	inst := cls.Instantiate()
	_ = inst.Set("first_name", domain.StringValue("Betty"))
	_ = inst.Set("age", domain.IntValue(89))

	data, err := Encode(inst)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s := string(data)

	order := []string{`"__class__":"User"`, `"id":"` + inst.ID + `"`, `"created_at":`, `"updated_at":`, `"first_name":"Betty"`, `"age":89`}
	last := -1
	for _, want := range order {
		i := strings.Index(s, want)
		if i < 0 {
			t.Fatalf("encoded object missing %s: %s", want, s)
		}
		if i < last {
			t.Errorf("%s out of order in %s", want, s)
		}
		last = i
	}
	if !json.Valid(data) {
		t.Errorf("invalid JSON: %s", s)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	reg := model.Default()
	cls, _ := reg.Resolve(model.Place)
	inst := cls.Instantiate()
	_ = inst.Set("name", domain.StringValue("Loft"))
	_ = inst.Set("latitude", domain.FloatValue(12))
	_ = inst.Set("amenity_ids", domain.ListValue(domain.StringValue("a1")))

	data, err := Encode(inst)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(data, reg)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if got.Class != cls {
		t.Error("decoded instance should resolve to the registered handle")
	}
	if got.ID != inst.ID || got.Key() != inst.Key() {
		t.Errorf("ID = %s, want %s", got.ID, inst.ID)
	}
	if !got.CreatedAt.Equal(inst.CreatedAt.Truncate(time.Microsecond)) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, inst.CreatedAt)
	}
	attrs := got.Attrs()
	if len(attrs) != 3 || attrs[0].Name != "name" || attrs[2].Name != "amenity_ids" {
		t.Fatalf("Attrs() = %+v", attrs)
	}
	if v, _ := got.Get("latitude"); !v.Equal(domain.FloatValue(12)) {
		t.Errorf("latitude = %s (%s), want float", v.Repr(), v.Kind())
	}
}

func TestDecode_Errors(t *testing.T) {
	reg := model.Default()
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not an object", `[1]`, domain.ErrCorruptRecord},
		{"truncated", `{"__class__":"User"`, domain.ErrCorruptRecord},
		{"missing id", `{"__class__":"User"}`, domain.ErrCorruptRecord},
		{"bad time", `{"__class__":"User","id":"1","created_at":"yesterday"}`, domain.ErrCorruptRecord},
		{"unknown class", `{"__class__":"Ghost","id":"1","created_at":"2026-01-02T03:04:05.000000","updated_at":"2026-01-02T03:04:05.000000"}`, domain.ErrUnknownStoredClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), reg); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteObject_ReadObject(t *testing.T) {
	fields := []Field{
		{Name: "z", Raw: json.RawMessage(`1`)},
		{Name: "a", Raw: json.RawMessage(`{"b":2}`)},
	}
	data := WriteObject(fields)
	if string(data) != `{"z":1,"a":{"b":2}}` {
		t.Fatalf("WriteObject() = %s", data)
	}
	got, err := ReadObject(json.NewDecoder(strings.NewReader(string(data))))
	if err != nil {
		t.Fatalf("ReadObject() error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "z" || string(got[1].Raw) != `{"b":2}` {
		t.Errorf("ReadObject() = %+v", got)
	}
}
