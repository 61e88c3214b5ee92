package service

import (
	"github.com/platemate/platemate-backend/internal/models"
)

// Actor identifies who is attempting an order status change.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorOwner    Actor = "owner"
)

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

// orderTransitions is the authoritative state machine. Completed and
// Cancelled are terminal: nothing transitions out of them.
var orderTransitions = map[transitionKey]bool{
	{models.StatusPending, models.StatusPreparing, ActorOwner}:   true,
	{models.StatusPending, models.StatusCompleted, ActorOwner}:   true,
	{models.StatusPending, models.StatusCancelled, ActorOwner}:   true,
	{models.StatusPreparing, models.StatusCompleted, ActorOwner}: true,
	{models.StatusPreparing, models.StatusCancelled, ActorOwner}: true,
	{models.StatusPending, models.StatusCancelled, ActorCustomer}: true,
}

// CanTransition reports whether actor may move an order from one status to
// another.
func CanTransition(from, to models.OrderStatus, actor Actor) bool {
	return orderTransitions[transitionKey{From: from, To: to, Actor: actor}]
}
