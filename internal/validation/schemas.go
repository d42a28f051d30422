package validation

// Schemas reconocidos. Los punteros distinguen "no enviado" de "valor cero".
// norm:"trim" recorta espacios antes de validar, así las longitudes ven el valor que se guarda.

type PetCreate struct {
	Name        *string `json:"name" norm:"trim" validate:"required,min=2,max=50"`
	Species     *string `json:"species" norm:"trim" validate:"required,min=2,max=30"`
	Age         *int    `json:"age" validate:"required,gte=0,lte=50"`
	Breed       *string `json:"breed" validate:"omitnil,min=1,max=50"`
	Description *string `json:"description" validate:"omitnil,min=1,max=500"`
}

type PetUpdate struct {
	Name        *string `json:"name" norm:"trim" validate:"omitnil,min=2,max=50"`
	Species     *string `json:"species" norm:"trim" validate:"omitnil,min=2,max=30"`
	Age         *int    `json:"age" validate:"omitnil,gte=0,lte=50"`
	Breed       *string `json:"breed" validate:"omitnil,min=1,max=50"`
	Description *string `json:"description" validate:"omitnil,min=1,max=500"`
}

// MinKeys: un update vacío no tiene sentido.
func (PetUpdate) MinKeys() int { return 1 }

type UserRegister struct {
	Email    *string `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"required,min=8,max=100"`
	Username *string `json:"username" validate:"required,alphanum,min=3,max=30"`
}

type UserLogin struct {
	Email    *string `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"required,min=1"`
}

// Str desreferencia campos ya validados como requeridos.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
