// Package transport serves the groqchat HTTP API.
//
// It exposes four endpoints — GET /, GET /health, GET /models, and
// POST /chat — plus middleware for panic recovery, request IDs,
// structured request logging, and CORS. Every non-2xx response carries
// the {"detail": ...} body shape.
package transport
