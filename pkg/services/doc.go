// Package services exposes the Hermes backend resources as typed Go calls.
//
// Every operation is a single call through the request layer with a fixed
// method and path. Services hold no state beyond the shared client and never
// branch, loop or retry.
//
// # Endpoints
//
// Activity logs:
//   - GET  /workspaces/:workspaceId/activity-logs
//
// Files:
//   - GET  /workspaces/:workspaceId/files/view/:key
//
// Notifications:
//   - GET  /notifications
//   - PUT  /notifications/:id/read
//   - PUT  /notifications/read-all
//
// Presence:
//   - POST /presence/heartbeat
//   - POST /presence/check
//
// Users:
//   - GET  /users/me
//   - PUT  /users
//
// Invitations:
//   - GET  /invitations/my
//   - POST /workspaces/:workspaceId/invitations
//   - POST /invitations/:id/respond?accept=:bool
//
// Workspaces:
//   - GET  /workspaces/:workspaceId
//
// Auth:
//   - POST /auth/login
//   - POST /auth/logout
//   - POST /auth/signup
//   - POST /auth/verify-email
//
// All paths are relative to the proxy prefix configured on the request client.
package services
