package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/san-kum/kinesim/internal/physics"
)

// File is the persisted form of a scene. Observed offsets are never written,
// so a loaded scene starts at its initial values.
type File struct {
	Objects []physics.ObjectRecord `json:"objects"`
}

func (s *Scene) File() (File, error) {
	f := File{Objects: make([]physics.ObjectRecord, 0, len(s.objects))}
	for _, o := range s.objects {
		rec, err := o.Record()
		if err != nil {
			return File{}, err
		}
		f.Objects = append(f.Objects, rec)
	}
	return f, nil
}

// Validate checks that:
//   - object names are non-empty and unique
//   - every quantity kind is known
//   - no object repeats a kind
func Validate(f File) error {
	names := make(map[string]struct{}, len(f.Objects))
	for i, o := range f.Objects {
		if o.Name == "" {
			return fmt.Errorf("object at index %d: %w", i, ErrEmptyName)
		}
		if _, ok := names[o.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateName, o.Name)
		}
		names[o.Name] = struct{}{}

		kinds := make(map[physics.Kind]struct{}, len(o.Properties))
		for _, p := range o.Properties {
			if !p.Kind.Known() {
				return fmt.Errorf("object %s: %w: %q", o.Name, physics.ErrUnknownKind, p.Kind)
			}
			if _, ok := kinds[p.Kind]; ok {
				return fmt.Errorf("object %s: %w: %s", o.Name, physics.ErrDuplicateKind, p.Kind)
			}
			kinds[p.Kind] = struct{}{}
		}
	}
	return nil
}

func FromFile(f File) (*Scene, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	s := New()
	for _, rec := range f.Objects {
		o, err := physics.FromRecord(rec, nil)
		if err != nil {
			return nil, err
		}
		if err := s.Add(o); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func Encode(s *Scene) ([]byte, error) {
	f, err := s.File()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*Scene, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return FromFile(f)
}

func SaveFile(path string, s *Scene) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
