// Package queue defines message payloads exchanged over the message broker.
package queue

// Employee event actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EmployeeChangedEvent is published after every successful employee
// mutation.  It carries a snapshot of the record so downstream consumers
// can log or audit without querying the primary database.
type EmployeeChangedEvent struct {
	Action          string `json:"action"` // create | update | delete
	EmployeeID      uint64 `json:"employee_id"`
	Prenom          string `json:"prenom"`
	Nom             string `json:"nom"`
	Fonction        string `json:"fonction"`
	DateRecrutement string `json:"date_recrutement"`
	Statut          string `json:"statut"`
	ActorID         uint64 `json:"actor_id"` // admin who performed the change
	OccurredAt      string `json:"occurred_at"`
}
