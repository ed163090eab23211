package model

import "time"

// Statut values stored in employees.statut.
const (
	StatutActive = "active"
	StatutAbsent = "absent"
	StatutQuitte = "quitte"
)

// ValidStatut reports whether s is one of the three allowed statut values.
func ValidStatut(s string) bool {
	return s == StatutActive || s == StatutAbsent || s == StatutQuitte
}

// Employee represents a personnel record in the `employees` table.  The
// French field names mirror the columns exactly; they are the domain
// vocabulary of the HR department this service was built for.
//
// Fields:
//  ID              – primary key identifier.
//  Prenom          – first name.
//  Nom             – last name.
//  Fonction        – job title.
//  DateRecrutement – hiring date (DATE column, day precision).
//  Statut          – employment status ("active", "absent" or "quitte").
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Employee struct {
	ID              uint64    `json:"id"`
	Prenom          string    `json:"prenom"`
	Nom             string    `json:"nom"`
	Fonction        string    `json:"fonction"`
	DateRecrutement time.Time `json:"dateRecrutement"`
	Statut          string    `json:"statut"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
