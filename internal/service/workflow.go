package service

import "github.com/Skotchmaster/pharmacy/internal/models"

// Transitions decides whether an order may move from one status to another.
type Transitions interface {
	Allowed(from, to string) bool
}

type permissive struct{}

func (permissive) Allowed(string, string) bool { return true }

// Permissive accepts every move, including backwards ones such as
// Delivered to Pending.
var Permissive Transitions = permissive{}

type table map[string]map[string]bool

func (t table) Allowed(from, to string) bool {
	if from == to {
		return true
	}
	return t[from][to]
}

// Forward only lets an order advance one step at a time.
var Forward Transitions = table{
	models.StatusPending:        {models.StatusProcessing: true},
	models.StatusProcessing:     {models.StatusOutForDelivery: true},
	models.StatusOutForDelivery: {models.StatusDelivered: true},
}
