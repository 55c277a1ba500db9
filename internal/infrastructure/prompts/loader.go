package prompts

import (
	_ "embed"
)

//go:embed searcher.txt
var SearcherPrompt string

//go:embed executor.txt
var ExecutorPrompt string
