package pets

// Listado fijo que GetAll devuelve cuando el store no responde y el fallback está habilitado.
func fallbackPets() []Pet {
	str := func(s string) *string { return &s }
	return []Pet{
		{ID: 1, Name: "Fluffy", Species: "Cat", Age: 3, Breed: str("Persian")},
		{ID: 2, Name: "Max", Species: "Dog", Age: 5, Breed: str("Golden Retriever")},
		{ID: 3, Name: "Whiskers", Species: "Cat", Age: 2, Breed: str("Siamese")},
		{ID: 4, Name: "Buddy", Species: "Dog", Age: 4, Breed: str("Labrador")},
	}
}
