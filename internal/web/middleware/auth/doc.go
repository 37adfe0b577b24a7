// Package auth provides the request pipeline of the web application.
//
// Three fiber handlers run in order on every request:
//   - Session decodes the session token from the Authorization header or the
//     session cookie. Requests without a valid token continue as anonymous.
//   - Sync loads or creates the local user of the session subject and stores
//     it in fiber.Locals under LocalsUser.
//   - Guard checks the request path against the access rules and redirects
//     denied requests to the forbidden landing page with a 303.
//
// Usage:
//
//	app.Use(
//	    authmiddleware.Session(decoder, mwCfg),
//	    authmiddleware.Sync(syncer),
//	    authmiddleware.Guard(rules, mwCfg),
//	)
//
// Handlers read the results with CurrentUser and SessionFrom.
package auth
