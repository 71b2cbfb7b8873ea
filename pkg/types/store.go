package types

import "fmt"

// Store is an ordered collection of property instances. Ordering is
// append-only: instances keep their creation order for serialization, even
// across destroy/recreate cycles.
type Store struct {
	instances []*Instance
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Len returns the number of instances.
func (s *Store) Len() int { return len(s.instances) }

// Instances returns the instances in creation order. The slice is shared;
// callers that mutate must Clone first.
func (s *Store) Instances() []*Instance { return s.instances }

// Find returns the instance with the given id.
func (s *Store) Find(id int) (*Instance, bool) {
	for _, in := range s.instances {
		if in.InstanceID == id {
			return in, true
		}
	}
	return nil, false
}

// Add appends an instance. Instance ids are unique within a store.
func (s *Store) Add(in *Instance) error {
	if err := CheckInstanceID(in.InstanceID); err != nil {
		return err
	}
	if _, ok := s.Find(in.InstanceID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateInstanceID, in.InstanceID)
	}
	s.instances = append(s.instances, in)
	return nil
}

// Remove deletes the instance with the given id.
func (s *Store) Remove(id int) error {
	for i, in := range s.instances {
		if in.InstanceID == id {
			s.instances = append(s.instances[:i], s.instances[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrInstanceNotFound, id)
}

// Clone returns a deep copy of the store. Mutating operations work on a
// clone and swap it in only on full success, so a failed call leaves the
// original store untouched.
func (s *Store) Clone() *Store {
	if s == nil {
		return NewStore()
	}
	c := NewStore()
	c.instances = make([]*Instance, len(s.instances))
	for i, in := range s.instances {
		c.instances[i] = in.Clone()
	}
	return c
}
