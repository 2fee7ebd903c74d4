package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/Adv-2005/DocuGenAI/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
