package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrStaffNotFound is returned when no staff member matches a lookup.
var ErrStaffNotFound = errors.New("staff not found")

// Staff is one member of the restaurant crew.
type Staff struct {
	ID       uuid.UUID
	Name     string
	Role     string
	passHash []byte
}

// Directory is the in-memory staff roster. The whole roster is seeded at
// startup; there is no persistence across runs.
type Directory struct {
	byName map[string]*Staff
	byID   map[uuid.UUID]*Staff
}

// NewDirectory creates an empty roster.
func NewDirectory() *Directory {
	return &Directory{
		byName: make(map[string]*Staff),
		byID:   make(map[uuid.UUID]*Staff),
	}
}

// Add registers a staff member with a bcrypt-hashed password.
func (d *Directory) Add(name, password, role string) (*Staff, error) {
	if _, exists := d.byName[name]; exists {
		return nil, fmt.Errorf("staff %q already registered", name)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	s := &Staff{ID: uuid.New(), Name: name, Role: role, passHash: hash}
	d.byName[name] = s
	d.byID[s.ID] = s
	return s, nil
}

// Authenticate checks name + password and returns the staff member.
// A wrong password and an unknown name are indistinguishable to the caller.
func (d *Directory) Authenticate(name, password string) (*Staff, error) {
	s, ok := d.byName[name]
	if !ok {
		return nil, ErrStaffNotFound
	}
	if err := bcrypt.CompareHashAndPassword(s.passHash, []byte(password)); err != nil {
		return nil, ErrStaffNotFound
	}
	return s, nil
}

// GetByID looks a staff member up by id.
func (d *Directory) GetByID(id uuid.UUID) (*Staff, error) {
	s, ok := d.byID[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return s, nil
}
