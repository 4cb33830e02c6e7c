package main

import _ "embed"

// indexHTML is the embedded viewer page.
//go:embed web/index.html
var indexHTML string
