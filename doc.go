// Package main is the entry point of HRPortal, the backend of the HR portal.
// It mirrors identity provider users into the local store, resolves their
// role and gates the administration routes by role.
package main
