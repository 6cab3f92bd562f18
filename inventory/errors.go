package inventory

import (
	"fmt"

	"mug-life-api/models"
)

// InsufficientStockError rejects an order that would drive a branch
// resource below zero. Resource is the first shortfall found.
type InsufficientStockError struct {
	Branch   models.Branch
	Resource models.Resource
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient %s at %s branch", e.Resource, e.Branch)
}
