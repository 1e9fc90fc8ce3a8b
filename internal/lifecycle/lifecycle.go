// Package lifecycle holds the order status state machine and who may drive it.
package lifecycle

import (
	"fmt"
	"strings"

	"hotelstay/internal/errors"
	"hotelstay/internal/model"
)

// Transition is a permitted status change for one actor role.
type Transition struct {
	From  model.OrderStatus `json:"from"`
	To    model.OrderStatus `json:"to"`
	Actor model.Role        `json:"actor"`
}

// transitions is the authoritative table. Anything not listed is rejected.
var transitions = []Transition{
	// Staff accepts, dispatches and delivers.
	{From: model.OrderStatusPending, To: model.OrderStatusPreparing, Actor: model.RoleAdmin},
	{From: model.OrderStatusPending, To: model.OrderStatusCancelled, Actor: model.RoleAdmin},
	{From: model.OrderStatusPreparing, To: model.OrderStatusOnTheWay, Actor: model.RoleAdmin},
	{From: model.OrderStatusOnTheWay, To: model.OrderStatusDelivered, Actor: model.RoleAdmin},
	// The owning guest may cancel until delivery.
	{From: model.OrderStatusPending, To: model.OrderStatusCancelled, Actor: model.RoleGuest},
	{From: model.OrderStatusPreparing, To: model.OrderStatusCancelled, Actor: model.RoleGuest},
	{From: model.OrderStatusOnTheWay, To: model.OrderStatusCancelled, Actor: model.RoleGuest},
}

var allowed = func() map[Transition]bool {
	m := make(map[Transition]bool, len(transitions))
	for _, t := range transitions {
		m[t] = true
	}
	return m
}()

var statuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusPreparing,
	model.OrderStatusOnTheWay,
	model.OrderStatusDelivered,
	model.OrderStatusCancelled,
}

// Statuses returns every status in lifecycle order.
func Statuses() []model.OrderStatus {
	out := make([]model.OrderStatus, len(statuses))
	copy(out, statuses)
	return out
}

// Parse converts s into a known status.
func Parse(s string) (model.OrderStatus, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errors.ErrUnknownStatus, s)
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s model.OrderStatus) bool {
	return s == model.OrderStatusDelivered || s == model.OrderStatusCancelled
}

// IsActive reports whether the order is being worked on by staff.
func IsActive(s model.OrderStatus) bool {
	return s == model.OrderStatusPreparing || s == model.OrderStatusOnTheWay
}

// CanTransition checks if actor may move an order from one status to another.
func CanTransition(from, to model.OrderStatus, actor model.Role) error {
	if allowed[Transition{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s is not allowed for %s (valid: %s)",
		errors.ErrInvalidTransition, from, to, actor, describe(Next(from, actor)))
}

// Next returns the statuses actor may move an order to from the given status.
func Next(from model.OrderStatus, actor model.Role) []model.OrderStatus {
	var next []model.OrderStatus
	for _, t := range transitions {
		if t.From == from && t.Actor == actor {
			next = append(next, t.To)
		}
	}
	return next
}

// Transitions returns the full table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

func describe(next []model.OrderStatus) string {
	if len(next) == 0 {
		return "none"
	}
	parts := make([]string, len(next))
	for i, s := range next {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
