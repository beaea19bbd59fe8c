package physics

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/san-kum/kinesim/internal/vmath"
)

// Sprite is the rendering collaborator's handle for an object's visual.
type Sprite interface {
	SetDrawPosition(vmath.Vec2)
	SetDrawSize(vmath.Vec2)
}

type ObjectRecord struct {
	Name       string   `json:"name"`
	Properties []Record `json:"properties"`
}

// Object owns an ordered, kind-unique set of quantities.
type Object struct {
	name       string
	sprite     Sprite
	quantities []Quantity
	index      map[Kind]int
	schedule   []Quantity
}

func NewObject(name string, sprite Sprite) *Object {
	return &Object{
		name:   name,
		sprite: sprite,
		index:  make(map[Kind]int),
	}
}

func (o *Object) Name() string        { return o.name }
func (o *Object) SetName(name string) { o.name = name }

func (o *Object) Sprite() Sprite {
	if o == nil {
		return nil
	}
	return o.sprite
}

// SetSprite attaches s and pushes the current position and size to it.
func (o *Object) SetSprite(s Sprite) {
	o.sprite = s
	if p, ok := Lookup[*Position](o, KindPosition); ok {
		p.pushSprite()
	}
	if z, ok := Lookup[*Size](o, KindSize); ok {
		z.pushSprite()
	}
}

func (o *Object) Add(q Quantity) error {
	if q.owner() != o {
		return fmt.Errorf("%w: %s", ErrForeignOwner, q.Kind())
	}
	if _, ok := o.index[q.Kind()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, q.Kind())
	}
	o.index[q.Kind()] = len(o.quantities)
	o.quantities = append(o.quantities, q)
	o.schedule = nil
	return nil
}

func (o *Object) Quantity(k Kind) (Quantity, bool) {
	i, ok := o.index[k]
	if !ok {
		return nil, false
	}
	return o.quantities[i], true
}

func (o *Object) Has(k Kind) bool {
	_, ok := o.index[k]
	return ok
}

// Quantities returns the quantities in insertion order.
func (o *Object) Quantities() []Quantity {
	out := make([]Quantity, len(o.quantities))
	copy(out, o.quantities)
	return out
}

// Lookup returns the sibling of kind k if it exists and has type Q.
func Lookup[Q Quantity](o *Object, k Kind) (Q, bool) {
	var zero Q
	if o == nil {
		return zero, false
	}
	q, ok := o.Quantity(k)
	if !ok {
		return zero, false
	}
	t, ok := q.(Q)
	return t, ok
}

// driven is implemented by quantities whose Simulate is invoked by another
// sibling rather than by the object's tick loop.
type driven interface {
	drivenBy() Kind
}

func (o *Object) scheduled() []Quantity {
	if o.schedule != nil {
		return o.schedule
	}
	s := make([]Quantity, 0, len(o.quantities))
	for _, q := range o.quantities {
		if d, ok := q.(driven); ok && o.Has(d.drivenBy()) {
			continue
		}
		s = append(s, q)
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Priority() < s[j].Priority() })
	o.schedule = s
	return s
}

// Simulate advances every scheduled quantity by one tick.
func (o *Object) Simulate(step float64) {
	for _, q := range o.scheduled() {
		q.Simulate(step)
	}
}

// Reset clears every observed offset. It must run before the first tick of a
// simulation run.
func (o *Object) Reset() {
	for _, q := range o.quantities {
		q.Reset()
	}
}

// Edit applies a user edit to the initial value of a changeable quantity.
func (o *Object) Edit(k Kind, raw json.RawMessage) error {
	q, ok := o.Quantity(k)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNotFound, k, o.name)
	}
	if !q.Changeable() {
		return fmt.Errorf("%w: %s", ErrNotChangeable, k)
	}
	return q.Restore(raw)
}

func (o *Object) Valid() bool {
	for _, q := range o.quantities {
		if !q.Finite() {
			return false
		}
	}
	return true
}

// Snapshot maps each kind to its current value.
func (o *Object) Snapshot() map[Kind]any {
	out := make(map[Kind]any, len(o.quantities))
	for _, q := range o.quantities {
		out[q.Kind()] = q.Current()
	}
	return out
}

func (o *Object) Record() (ObjectRecord, error) {
	rec := ObjectRecord{Name: o.name, Properties: make([]Record, 0, len(o.quantities))}
	for _, q := range o.quantities {
		r, err := q.Record()
		if err != nil {
			return ObjectRecord{}, fmt.Errorf("object %s: %w", o.name, err)
		}
		rec.Properties = append(rec.Properties, r)
	}
	return rec, nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	rec, err := o.Record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}
