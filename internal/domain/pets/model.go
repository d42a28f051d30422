package pets

import "time"

// Pet es el recurso administrado por la API.
type Pet struct {
	ID      int64
	Name    string
	Species string
	Age     int

	// Opcionales: nil = sin valor.
	Breed       *string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch lleva solo los campos enviados por el cliente (nil = no tocar).
type Patch struct {
	Name        *string
	Species     *string
	Age         *int
	Breed       *string
	Description *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Species == nil && p.Age == nil && p.Breed == nil && p.Description == nil
}

// Apply devuelve una copia de pet con los campos del patch aplicados.
func (p Patch) Apply(pet Pet) Pet {
	if p.Name != nil {
		pet.Name = *p.Name
	}
	if p.Species != nil {
		pet.Species = *p.Species
	}
	if p.Age != nil {
		pet.Age = *p.Age
	}
	if p.Breed != nil {
		pet.Breed = p.Breed
	}
	if p.Description != nil {
		pet.Description = p.Description
	}
	return pet
}

// DeleteResult es la confirmación de un Delete exitoso.
type DeleteResult struct {
	Message string `json:"message"`
}
