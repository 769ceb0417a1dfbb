// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config builds the immutable docsgate configuration.
//
// Precedence is ENV > YAML file > built-in defaults. The YAML file is parsed
// strictly: unknown keys and trailing documents are rejected. The result of
// Loader.Load is validated and never mutated afterwards; callers receive it
// by value and pass it down to the components they construct.
package config
