// Package hooks contains the post-processing generators that run after a
// template has been copied and rendered.
//
// Hooks are registered by name and bound to template ids through
// configuration. A template id with no binding needs no post-processing.
// Two hooks are built in:
//
//	compose    writes docker-compose.yml for microservice layouts
//	workspace  writes the root package.json of a frontend monorepo
package hooks
