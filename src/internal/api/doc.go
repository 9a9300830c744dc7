// Package api provides the localhost JSON API of keen-tray.
//
// The API is what a tray or other GUI front-end consumes: it exposes the
// state of the active router and the policy actions on its clients. It is
// served by the `serve` command and only accepts loopback connections.
//
// # Endpoints
//
//	GET    /api/v1/status                 select the active router and render its state
//	POST   /api/v1/refresh                same as GET /status
//	GET    /api/v1/routers                configured routers
//	POST   /api/v1/routers                add or edit a router
//	DELETE /api/v1/routers/{name}         remove a router
//	POST   /api/v1/clients/{mac}/policy   {"policy": "Policy0"} or {"policy": null}
//	POST   /api/v1/clients/{mac}/default
//	POST   /api/v1/clients/{mac}/block
//	POST   /api/v1/choices/{id}           apply a menu entry returned in "choices"
//	GET    /api/v1/dns                    upstream DNS servers of the active router
//	GET    /api/v1/health
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "no_active_router",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
