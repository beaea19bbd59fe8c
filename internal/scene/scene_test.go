package scene

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

func solid(name string, pos vmath.Vec2) *physics.Object {
	return physics.NewSolid(physics.SolidConfig{Name: name, Position: pos, Size: vmath.V(1, 2)}, nil)
}

func TestScene_AddFind(t *testing.T) {
	s := New()
	if err := s.Add(solid("a", vmath.Zero)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(solid("a", vmath.Zero)); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate: got %v", err)
	}
	if err := s.Add(solid("", vmath.Zero)); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty: got %v", err)
	}

	if _, ok := s.Find("a"); !ok {
		t.Error("object a not found")
	}
	if _, err := s.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: got %v", err)
	}

	if !s.Remove("a") || s.Len() != 0 {
		t.Error("remove failed")
	}
	if s.Remove("a") {
		t.Error("removed twice")
	}
}

func TestScene_WithKind(t *testing.T) {
	s := New()
	s.Add(solid("ball", vmath.Zero))
	bare := physics.NewObject("marker", nil)
	bare.Add(physics.NewPosition(bare, vmath.Zero))
	s.Add(bare)

	if got := s.WithKind(physics.KindPosition); len(got) != 2 || got[0] != "ball" || got[1] != "marker" {
		t.Errorf("position holders = %v", got)
	}
	if got := s.WithKind(physics.KindVelocity); len(got) != 1 || got[0] != "ball" {
		t.Errorf("velocity holders = %v", got)
	}
}

func TestScene_SaveLoad(t *testing.T) {
	s := New()
	a := solid("a", vmath.V(1, 2))
	vel, _ := physics.Lookup[*physics.Velocity](a, physics.KindVelocity)
	vel.SetInitialValue(vmath.V(1, 0))
	s.Add(a)
	s.Add(solid("b", vmath.V(-3, 0)))

	s.Reset()
	s.Simulate(2)

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := SaveFile(path, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", loaded.Len())
	}

	la, _ := loaded.Find("a")
	pos, _ := physics.Lookup[*physics.Position](la, physics.KindPosition)
	if pos.Value() != vmath.V(1, 2) {
		t.Errorf("loaded position = %v, want initial (1,2)", pos.Value())
	}
	lv, _ := physics.Lookup[*physics.Velocity](la, physics.KindVelocity)
	if lv.Value() != vmath.V(1, 0) {
		t.Errorf("loaded velocity = %v, want (1,0)", lv.Value())
	}
}

func TestEncode_Format(t *testing.T) {
	s := New()
	o := physics.NewObject("m", nil)
	o.Add(physics.NewMass(o, 2))
	s.Add(o)

	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"name": "m"`, `"kind": "mass"`, `"iValue": 2`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded scene missing %s:\n%s", want, data)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file File
		want error
	}{
		{"empty name", File{Objects: []physics.ObjectRecord{{Name: ""}}}, ErrEmptyName},
		{"duplicate name", File{Objects: []physics.ObjectRecord{{Name: "a"}, {Name: "a"}}}, ErrDuplicateName},
		{"unknown kind", File{Objects: []physics.ObjectRecord{
			{Name: "a", Properties: []physics.Record{{Kind: "charge"}}},
		}}, physics.ErrUnknownKind},
		{"duplicate kind", File{Objects: []physics.ObjectRecord{
			{Name: "a", Properties: []physics.Record{{Kind: physics.KindMass}, {Kind: physics.KindMass}}},
		}}, physics.ErrDuplicateKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.file); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	if err := Validate(File{}); err != nil {
		t.Errorf("empty file: %v", err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{")); err == nil {
		t.Error("expected decode error")
	}
}
