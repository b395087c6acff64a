// Package export serializes profile mappings into consumer formats:
// JSON, shell export statements, docker-compose environment lines,
// .env file content, and YAML.
//
// All serializers are pure functions over a finished mapping; they
// never touch storage. Map-based formats emit keys in sorted order so
// output is reproducible.
package export
