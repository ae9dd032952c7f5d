package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

// ─── Value Coercion ─────────────────────────────────────────────────────────

func TestParseValue_Order(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"1", KindInt, "1"},
		{"-42", KindInt, "-42"},
		{" 7 ", KindInt, "7"},
		{"1.5", KindFloat, "1.5"},
		{"3.", KindFloat, "3.0"},
		{"1e3", KindFloat, "1000.0"},
		{"abc", KindString, "abc"},
		{"1.2.3", KindString, "1.2.3"},
		{"", KindString, ""},
		{"Betty Holberton", KindString, "Betty Holberton"},
		{"1_000", KindInt, "1000"},
		{"-2_500.5", KindFloat, "-2500.5"},
		{"1__0", KindString, "1__0"},
		{"_1", KindString, "_1"},
		{"1_", KindString, "1_"},
		{"first_name", KindString, "first_name"},
		{"0x10", KindString, "0x10"},
		{"0x1p4", KindString, "0x1p4"},
		{"010", KindInt, "10"},
		{"99999999999999999999", KindFloat, "1e+20"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseValue(tt.input)
			if got.Kind() != tt.kind {
				t.Errorf("ParseValue(%q).Kind() = %s, want %s", tt.input, got.Kind(), tt.kind)
			}
			if got.Text() != tt.text {
				t.Errorf("ParseValue(%q).Text() = %q, want %q", tt.input, got.Text(), tt.text)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if n, ok := IntValue(3).Int(); !ok || n != 3 {
		t.Errorf("Int() = %d, %v", n, ok)
	}
	if _, ok := IntValue(3).Float(); ok {
		t.Error("int value should not report as float")
	}
	if f, ok := FloatValue(2.5).Float(); !ok || f != 2.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if s, ok := StringValue("x").Str(); !ok || s != "x" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	if !NullValue().IsNull() {
		t.Error("NullValue should be null")
	}
	var zero Value
	if !zero.IsNull() {
		t.Error("zero Value should be null")
	}
}

func TestValue_Repr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{StringValue(`say "hi"`), `"say \"hi\""`},
		{IntValue(0), "0"},
		{FloatValue(0), "0.0"},
		{FloatValue(math.Inf(1)), "+Inf"},
		{BoolValue(true), "true"},
		{NullValue(), "null"},
		{ListValue(IntValue(1), StringValue("a")), `[1, "a"]`},
		{ListValue(), "[]"},
	}
	for _, tt := range tests {
		if got := tt.v.Repr(); got != tt.want {
			t.Errorf("Repr() = %s, want %s", got, tt.want)
		}
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	values := []Value{
		StringValue("hello"),
		IntValue(12),
		FloatValue(12),
		FloatValue(0.25),
		BoolValue(false),
		NullValue(),
		ListValue(StringValue("a"), IntValue(2)),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%s) error: %v", v.Repr(), err)
		}
		var got Value
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", data, err)
		}
		if !got.Equal(v) {
			t.Errorf("round trip of %s = %s (%s)", v.Repr(), got.Repr(), got.Kind())
		}
	}
}

func TestValue_UnmarshalNestedObjectKeepsText(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if s, ok := v.Str(); !ok || s != `{"a":1}` {
		t.Errorf("nested object = %s, want JSON text", v.Repr())
	}
}

// ─── Objects ────────────────────────────────────────────────────────────────

func TestObjects_Order(t *testing.T) {
	cls := &Class{Name: "Thing"}
	a, b, c := cls.Instantiate(), cls.Instantiate(), cls.Instantiate()

	objs := NewObjects()
	objs.Set(a.Key(), a)
	objs.Set(b.Key(), b)
	objs.Set(c.Key(), c)
	objs.Set(a.Key(), a) // re-set keeps position

	keys := objs.Keys()
	if len(keys) != 3 || keys[0] != a.Key() || keys[2] != c.Key() {
		t.Fatalf("Keys() = %v", keys)
	}

	if !objs.Delete(b.Key()) {
		t.Fatal("Delete() should report present key")
	}
	if objs.Delete(b.Key()) {
		t.Fatal("Delete() twice should report missing key")
	}
	objs.Set(b.Key(), b)

	vals := objs.Values()
	if len(vals) != 3 || vals[2] != b {
		t.Errorf("re-added key should move to the end, got %v", objs.Keys())
	}
	if objs.Len() != 3 {
		t.Errorf("Len() = %d, want 3", objs.Len())
	}

	objs.Reset()
	if objs.Len() != 0 || objs.Has(a.Key()) {
		t.Error("Reset() should drop every entry")
	}
}

// ─── Class & Instance ───────────────────────────────────────────────────────

func TestClass_InstantiateUniqueIDs(t *testing.T) {
	cls := &Class{Name: "Thing"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		inst := cls.Instantiate()
		if seen[inst.ID] {
			t.Fatalf("duplicate id %s", inst.ID)
		}
		seen[inst.ID] = true
		if inst.Class != cls {
			t.Fatal("instance should reference its class handle")
		}
		if !inst.CreatedAt.Equal(inst.UpdatedAt) {
			t.Error("new instance timestamps should match")
		}
	}
}

func TestClass_DefaultsFollowParents(t *testing.T) {
	base := &Class{Name: "Base", Defaults: []Attr{{Name: "kind", Value: StringValue("base")}}}
	child := &Class{Name: "Child", Parent: base, Defaults: []Attr{{Name: "rooms", Value: IntValue(0)}}}

	inst := child.Instantiate()
	if v, ok := inst.Get("rooms"); !ok || !v.Equal(IntValue(0)) {
		t.Errorf("rooms = %s, %v", v.Repr(), ok)
	}
	if v, ok := inst.Get("kind"); !ok || v.Text() != "base" {
		t.Errorf("kind = %s, %v", v.Repr(), ok)
	}
	if _, ok := inst.Get("missing"); ok {
		t.Error("unknown attribute should not resolve")
	}
	if !child.IsA(base) || base.IsA(child) {
		t.Error("IsA should follow the parent chain only upward")
	}
	if len(inst.Attrs()) != 0 {
		t.Error("defaults should not be copied into the field store")
	}
}

func TestInstance_SetAndReserved(t *testing.T) {
	inst := (&Class{Name: "Thing"}).Instantiate()

	if err := inst.Set("name", StringValue("x")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := inst.Set("name", IntValue(2)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, _ := inst.Get("name"); !v.Equal(IntValue(2)) {
		t.Errorf("name = %s, want 2", v.Repr())
	}
	if len(inst.Attrs()) != 1 {
		t.Errorf("Attrs() len = %d, want 1", len(inst.Attrs()))
	}

	for _, name := range []string{AttrID, AttrCreatedAt, AttrUpdatedAt, AttrClass} {
		if err := inst.Set(name, StringValue("nope")); err != ErrReadOnlyAttribute {
			t.Errorf("Set(%q) error = %v, want ErrReadOnlyAttribute", name, err)
		}
	}
}

func TestInstance_SaveRunsHook(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = func() time.Time { return time.Now().UTC() } })

	inst := (&Class{Name: "Thing"}).Instantiate()
	later := base.Add(time.Minute)
	now = func() time.Time { return later }

	calls := 0
	inst.OnSave(func(got *Instance) error {
		calls++
		if got != inst {
			t.Error("hook should receive the saved instance")
		}
		return nil
	})
	if err := inst.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("hook calls = %d, want 1", calls)
	}
	if !inst.UpdatedAt.Equal(later) || !inst.CreatedAt.Equal(base) {
		t.Errorf("timestamps = %v / %v", inst.CreatedAt, inst.UpdatedAt)
	}
}

func TestInstance_String(t *testing.T) {
	inst := (&Class{Name: "User"}).Instantiate()
	_ = inst.Set("email", StringValue("a@b.c"))

	s := inst.String()
	if !strings.HasPrefix(s, "[User] ("+inst.ID+") {") {
		t.Errorf("String() = %q", s)
	}
	for _, want := range []string{`"id": "` + inst.ID + `"`, `"created_at": `, `"email": "a@b.c"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %s: %q", want, s)
		}
	}
	if inst.Key() != "User."+inst.ID {
		t.Errorf("Key() = %q", inst.Key())
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(ErrInstanceNotFound) {
		t.Error("ErrInstanceNotFound should be a user error")
	}
	if IsUserError(ErrCorruptRecord) {
		t.Error("ErrCorruptRecord should not be a user error")
	}
}
