package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/medalytics/medalytics-cli/cmd"
)

const outputDir = "docs"

func main() {
	log.Println("Generating docs...")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatal("Error creating docs dir: " + err.Error())
	}

	// Generate Markdown documentation
	if err := doc.GenMarkdownTree(cmd.RootCmd, outputDir); err != nil {
		log.Fatal("Error generating documentation: " + err.Error())
	}
	log.Println("Documentation generated in " + outputDir)
}
