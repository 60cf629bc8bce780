// Package content embeds the built-in lesson and quiz documents.
package content

import "embed"

// FS holds lessons/*.json and quizzes/*.json.
//
//go:embed lessons/*.json quizzes/*.json
var FS embed.FS
