// Command vendormatch manages a catalog of businesses and their keywords and
// resolves free-form text fragments against it. Command families: business,
// keyword, match, stats, config.
package main
