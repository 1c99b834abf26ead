package statemachine

import (
	"errors"

	"mini-ecommerce-api/models"
)

// Transition defines a valid shipping status change
type Transition struct {
	From models.ShippingStatus
	To   models.ShippingStatus
}

// validTransitions is the authoritative delivery lifecycle definition
var validTransitions = []Transition{
	{From: models.ShippingPending, To: models.ShippingShipped},
	{From: models.ShippingShipped, To: models.ShippingDelivered},
	{From: models.ShippingDelivered, To: models.ShippingReturned},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// Known reports whether the status is part of the lifecycle at all.
func Known(status models.ShippingStatus) bool {
	switch status {
	case models.ShippingPending, models.ShippingShipped, models.ShippingDelivered, models.ShippingReturned:
		return true
	}
	return false
}

// ValidTransitionsFrom returns all valid next statuses from a given status
func ValidTransitionsFrom(status models.ShippingStatus) []models.ShippingStatus {
	var nexts []models.ShippingStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether a shipping record may move between two statuses
func CanTransition(from, to models.ShippingStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.ShippingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
