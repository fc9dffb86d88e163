// Package config loads fastgen's configuration.
//
// Layers are applied in order, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. user file $XDG_CONFIG_HOME/fastgen/config.toml
//  3. project file .fastgen.toml in the working directory
//  4. an explicit file passed with --config
//  5. environment variables prefixed with FASTGEN_
//
// Environment keys use a double underscore for nesting, so
// FASTGEN_WALKER__EXCLUDE_DIRS=node_modules,.git sets walker.exclude_dirs.
package config
