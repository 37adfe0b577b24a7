// Package models contains the gorm model definitions of the HR portal:
// users synced from the identity provider, their employee profiles and the
// audit log.
package models
