// Package service wires the HTTP API: authentication, entity CRUD,
// listings, the inventory summary and bulk upload submission.
package service

import (
	"dcim/bulk"
	"dcim/cache"
)

var (
	pipeline *bulk.Pipeline
	store    *cache.Store
)

// Init installs the collaborators the handlers share. Call once before
// registering routes.
func Init(p *bulk.Pipeline, s *cache.Store) {
	pipeline = p
	store = s
}
