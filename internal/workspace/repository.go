package workspace

import (
	"starforge/internal/entity"
)

// Repository holds the ordered root entities of a workspace
type Repository struct {
	roots []entity.Entity
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Add(e entity.Entity) {
	r.roots = append(r.roots, e)
}

// Remove drops the root with the given id and reports whether it was found
func (r *Repository) Remove(id entity.ID) bool {
	for i, e := range r.roots {
		if e.Base().ID == id {
			r.roots = append(r.roots[:i:i], r.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns the roots in creation order. The slice must not be modified.
func (r *Repository) Roots() []entity.Entity {
	return r.roots
}

// IsRoot reports whether e is one of the stored roots
func (r *Repository) IsRoot(e entity.Entity) bool {
	for _, root := range r.roots {
		if root == e {
			return true
		}
	}
	return false
}

// Find searches every root tree for id
func (r *Repository) Find(id entity.ID) entity.Entity {
	for _, root := range r.roots {
		if e := entity.Find(root, id); e != nil {
			return e
		}
	}
	return nil
}

// MaxID returns the largest identity in any stored tree
func (r *Repository) MaxID() entity.ID {
	var highest entity.ID
	for _, root := range r.roots {
		highest = max(highest, entity.MaxID(root))
	}
	return highest
}

func (r *Repository) Replace(roots []entity.Entity) {
	r.roots = roots
}
