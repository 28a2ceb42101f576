// Package migrations contains all schema migration files. Each file
// registers its migrations in an init(), so importing this package from
// cmd/washly is enough to make them runnable.
package migrations
