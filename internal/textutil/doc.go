// Package textutil provides text processing utilities for filename
// sanitization and identifier tokens.
//
// Catalog rows carry free-form titles that routinely contain characters a
// filesystem rejects or mangles (slashes, quotes, trademark glyphs). The
// helpers here reduce those strings to stable, path-safe forms so the same
// row always maps to the same local file.
package textutil
