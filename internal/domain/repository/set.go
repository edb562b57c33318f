package repository

// Set repositorios atados a una misma transacción.
type Set struct {
	Categories CategoryRepository
	Attributes AttributeRepository
	Bindings   BindingRepository
	Products   ProductRepository
	Auxiliary  AuxiliaryRepository
}
