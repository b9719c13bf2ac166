// Package api serves the todo list over HTTP/JSON and hosts the browser UI.
//
// # Endpoints
//
//	GET    /            HTML page; loads the list and wires add/delete buttons
//	GET    /health      200 while the process is up
//	GET    /todos       [{"id":1,"title":"...","completed":false}, ...]
//	POST   /todos       {"title":"..."} -> 201 + created item
//	DELETE /todos/{id}  200 {"message":"Deleted","todo":{...}}
//
// Failures always carry a JSON body of the form {"error": "..."}:
//   - 400 "Title is required": empty body, missing or empty title, or a
//     body not sent as application/json (or application/*+json)
//   - 400 "Invalid request body": body is not a single JSON object with a
//     string title
//   - 500 "Internal server error": the store failed; details go to the log only
//   - 404 "Todo not found": no item with that id (non-numeric ids included)
//
// # Middleware
//
// Every request passes through, outermost first:
//   - request id: X-Request-ID is reused or generated (UUID) and echoed back
//   - access log: one slog record with method, path, status and duration
//   - CORS: any origin may call GET, POST and DELETE
//
// The Server never touches package-level state; the Store it wraps is
// passed in by the caller.
package api
