// Package auth ties the identity provider to the local user store and
// decides who may see what.
//
// # Identity sync
//
// Syncer.SyncUser materializes the local user record of a session subject.
// Known subjects are answered from the store without contacting the
// provider. Unknown subjects are fetched once and inserted with the
// employee role. Two requests racing on the same new subject both end up
// with the single row that won the insert.
//
// # Roles and access rules
//
// ResolveRole reports the role of a possibly absent user. AccessRules is an
// ordered table of path prefixes and the role each one requires; the first
// matching prefix decides and unmatched paths are open to everyone.
//
// # Role updates
//
// Service changes roles and activation flags. ChangeRole and ChangeActive
// also write an audit log entry in the same transaction.
//
// Example usage:
//
//	syncer := auth.NewSyncer(user.New(db), identity.NewClient(ctx, cfg.IdentityProvider), "google")
//	u, err := syncer.SyncUser(ctx, session.UserID)
//
//	rules, err := auth.NewAccessRules(cfg.Access.Rules)
//	role, ok := auth.ResolveRole(u)
//	if !rules.Evaluate(c.Path(), role, ok).Allowed { ... }
package auth
