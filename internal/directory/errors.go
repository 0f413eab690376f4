package directory

import (
	"errors"
	"fmt"

	"github.com/hellolocalo/localo-backend/pkg/enums"
)

// ErrOrderNotFound signals a ledger lookup miss.
var ErrOrderNotFound = errors.New("order not found")

// InvalidTransitionError reports a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From enums.OrderStatus
	To   enums.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}
