package physics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/kinesim/internal/vmath"
)

type recordingSprite struct {
	positions []vmath.Vec2
	sizes     []vmath.Vec2
}

func (s *recordingSprite) SetDrawPosition(v vmath.Vec2) { s.positions = append(s.positions, v) }
func (s *recordingSprite) SetDrawSize(v vmath.Vec2)     { s.sizes = append(s.sizes, v) }

func TestProperty_ValueIsInitialPlusObserved(t *testing.T) {
	o := NewObject("box", nil)
	p := NewPosition(o, vmath.V(1, 1))

	p.SetValue(vmath.V(4, 5))
	if p.Value() != vmath.V(4, 5) {
		t.Fatalf("value = %v, want (4,5)", p.Value())
	}
	if p.observed != vmath.V(3, 4) {
		t.Errorf("observed = %v, want (3,4)", p.observed)
	}

	// nudging the baseline keeps the simulated delta
	p.SetInitialValue(vmath.V(2, 2))
	if p.Value() != vmath.V(5, 6) {
		t.Errorf("value after baseline change = %v, want (5,6)", p.Value())
	}
}

func TestProperty_ResetClearsObserved(t *testing.T) {
	tests := []struct {
		name string
		q    func(o *Object) Quantity
		mut  func(q Quantity)
	}{
		{"position", func(o *Object) Quantity { return NewPosition(o, vmath.V(0.1, 0.7)) },
			func(q Quantity) { q.(*Position).SetValue(vmath.V(9.3, -1.1)) }},
		{"mass", func(o *Object) Quantity { return NewMass(o, 0.3) },
			func(q Quantity) { q.(*Mass).SetValue(1.7) }},
		{"centripetal", func(o *Object) Quantity {
			return NewCentripetalAcceleration(o, vmath.VectorModulus{Vector: vmath.V(1, 2), Modulus: 0.1})
		}, func(q Quantity) {
			q.(*CentripetalAcceleration).SetValue(vmath.VectorModulus{Modulus: 7.9})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.q(NewObject("o", nil))
			tt.mut(q)
			q.Reset()

			rec, err := q.Record()
			if err != nil {
				t.Fatal(err)
			}
			cur, err := json.Marshal(q.Current())
			if err != nil {
				t.Fatal(err)
			}
			if string(cur) != string(rec.IValue) {
				t.Errorf("after reset value %s != initial %s", cur, rec.IValue)
			}
		})
	}
}

func TestProperty_HooksRunOncePerMutation(t *testing.T) {
	sprite := &recordingSprite{}
	o := NewObject("box", sprite)
	p := NewPosition(o, vmath.Zero)

	calls := 0
	var last vmath.Vec2
	p.OnValueChanged(func(v vmath.Vec2) {
		calls++
		last = v
	})

	p.SetValue(vmath.V(1, 0))
	p.SetInitialValue(vmath.V(0, 1))
	p.Reset()

	if calls != 3 {
		t.Errorf("hook calls = %d, want 3", calls)
	}
	if last != vmath.V(0, 1) {
		t.Errorf("last hook value = %v, want (0,1)", last)
	}
	// one push from the constructor plus one per mutation
	if len(sprite.positions) != 4 {
		t.Errorf("sprite pushes = %d, want 4", len(sprite.positions))
	}
}

func TestProperty_RecordOmitsObserved(t *testing.T) {
	o := NewObject("box", nil)
	v := NewVelocity(o, vmath.V(1, 2))
	v.SetValue(vmath.V(10, 20))

	rec, err := v.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != KindVelocity {
		t.Errorf("kind = %s", rec.Kind)
	}
	if string(rec.IValue) != `{"x":1,"y":2}` {
		t.Errorf("iValue = %s", rec.IValue)
	}
}

func TestProperty_RestoreRejectsBadJSON(t *testing.T) {
	o := NewObject("box", nil)
	m := NewMass(o, 1)
	if err := m.Restore(json.RawMessage(`{"x":1}`)); err == nil {
		t.Error("expected decode error")
	}
	if err := m.Restore(json.RawMessage(`2.5`)); err != nil {
		t.Fatal(err)
	}
	if m.Value() != 2.5 {
		t.Errorf("mass = %v, want 2.5", m.Value())
	}
}

func TestProperty_Finite(t *testing.T) {
	o := NewObject("box", nil)
	p := NewPosition(o, vmath.Zero)
	if !p.Finite() {
		t.Error("zero position reported non-finite")
	}
	p.SetValue(vmath.V(0, 1).Div(0))
	if p.Finite() {
		t.Error("infinite position reported finite")
	}
	o.Add(p)
	if o.Valid() {
		t.Error("object with infinite position reported valid")
	}
}

func TestObject_AddRejects(t *testing.T) {
	o := NewObject("a", nil)
	other := NewObject("b", nil)

	if err := o.Add(NewMass(o, 1)); err != nil {
		t.Fatal(err)
	}
	if err := o.Add(NewMass(o, 2)); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("duplicate kind: got %v", err)
	}
	if err := o.Add(NewVelocity(other, vmath.Zero)); !errors.Is(err, ErrForeignOwner) {
		t.Errorf("foreign owner: got %v", err)
	}
}

func TestObject_ScheduleOrder(t *testing.T) {
	o := NewSolid(SolidConfig{Name: "s", Size: vmath.V(1, 1)}, nil)

	var kinds []Kind
	for _, q := range o.scheduled() {
		kinds = append(kinds, q.Kind())
	}

	want := []Kind{KindPosition, KindSize, KindArea, KindAcceleration, KindMass, KindVelocity, KindDisplacement}
	if len(kinds) != len(want) {
		t.Fatalf("schedule = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("schedule[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestObject_CentripetalScheduledWithoutVelocity(t *testing.T) {
	o := NewObject("o", nil)
	o.Add(NewPosition(o, vmath.V(2, 0)))
	o.Add(NewAcceleration(o, vmath.Zero))
	o.Add(NewCentripetalAcceleration(o, vmath.VectorModulus{Vector: vmath.Zero, Modulus: 3}))

	o.Reset()
	o.Simulate(0.1)

	acc, _ := Lookup[*Acceleration](o, KindAcceleration)
	if acc.Value() != vmath.V(-3, 0) {
		t.Errorf("acceleration = %v, want (-3,0)", acc.Value())
	}
}

func TestObject_Edit(t *testing.T) {
	o := NewSolid(SolidConfig{Name: "s", Size: vmath.V(1, 1)}, nil)

	if err := o.Edit(KindSize, json.RawMessage(`{"x":2,"y":5}`)); err != nil {
		t.Fatal(err)
	}
	area, _ := Lookup[*Area](o, KindArea)
	if area.Value() != 10 {
		t.Errorf("area = %v, want 10", area.Value())
	}

	for _, k := range []Kind{KindArea, KindDisplacement} {
		if err := o.Edit(k, json.RawMessage(`0`)); !errors.Is(err, ErrNotChangeable) {
			t.Errorf("edit %s: got %v, want ErrNotChangeable", k, err)
		}
	}

	if err := NewObject("empty", nil).Edit(KindMass, json.RawMessage(`1`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("edit missing: got %v", err)
	}
}

func TestFromRecord_RoundTrip(t *testing.T) {
	o := NewSolid(SolidConfig{Name: "ball", Position: vmath.V(1, 2), Size: vmath.V(2, 2)}, nil)
	vel, _ := Lookup[*Velocity](o, KindVelocity)
	vel.SetInitialValue(vmath.V(3, 0))
	o.Reset()
	o.Simulate(1)

	rec, err := o.Record()
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := FromRecord(rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name() != "ball" {
		t.Errorf("name = %s", loaded.Name())
	}
	pos, _ := Lookup[*Position](loaded, KindPosition)
	if pos.Value() != vmath.V(1, 2) {
		t.Errorf("loaded position = %v, want the initial (1,2)", pos.Value())
	}
	area, _ := Lookup[*Area](loaded, KindArea)
	if area.Value() != 4 {
		t.Errorf("loaded area = %v, want 4", area.Value())
	}
	if len(loaded.Quantities()) != len(Kinds) {
		t.Errorf("loaded %d quantities, want %d", len(loaded.Quantities()), len(Kinds))
	}
}

func TestFromRecord_UnknownKind(t *testing.T) {
	_, err := FromRecord(ObjectRecord{Name: "x", Properties: []Record{{Kind: "temperature"}}}, nil)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}

func TestObject_SetSpriteSyncs(t *testing.T) {
	o := NewSolid(SolidConfig{Name: "box", Position: vmath.V(2, 3), Size: vmath.V(4, 5)}, nil)
	sprite := &recordingSprite{}
	o.SetSprite(sprite)

	if len(sprite.positions) != 1 || sprite.positions[0] != vmath.V(2, 3) {
		t.Errorf("positions = %v", sprite.positions)
	}
	if len(sprite.sizes) != 1 || sprite.sizes[0] != vmath.V(4, 5) {
		t.Errorf("sizes = %v", sprite.sizes)
	}

	o.Simulate(0.1)
	if len(sprite.positions) < 1 {
		t.Error("sprite lost after simulate")
	}
}
