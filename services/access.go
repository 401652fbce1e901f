package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// Access is the set of roles an actor holds over an entity.
type Access uint8

const (
	AccessNone     Access = 0
	AccessCustomer Access = 1 << iota
	AccessOwner
)

// AccessFor compares the actor with the entity's customer and the owner of its restaurant.
func AccessFor(actor, customer, owner primitive.ObjectID) Access {
	access := AccessNone
	if actor.IsZero() {
		return access
	}
	if actor == customer {
		access |= AccessCustomer
	}
	if actor == owner {
		access |= AccessOwner
	}
	return access
}

func (a Access) Customer() bool { return a&AccessCustomer != 0 }
func (a Access) Owner() bool    { return a&AccessOwner != 0 }
func (a Access) Any() bool      { return a != AccessNone }
