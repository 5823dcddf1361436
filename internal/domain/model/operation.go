package model

// Operation is the kind of store mutation recorded to the operations log.
type Operation string

const (
	// OperationCreate is a product created.
	OperationCreate Operation = "CREATE"
	// OperationUpdate is a product overwritten.
	OperationUpdate Operation = "UPDATE"
	// OperationDelete is a product removed.
	OperationDelete Operation = "DELETE"
	// OperationOrder is stock committed to an order.
	OperationOrder Operation = "ORDER"
)
