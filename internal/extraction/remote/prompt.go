package remote

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/tasksift/internal/extraction"
)

//go:embed prompts/extract.tmpl
var defaultExtractionPrompt string

//go:embed prompts/priority.tmpl
var defaultPriorityPrompt string

// extractionData is the data available to the extraction prompt template.
type extractionData struct {
	ContextDescription string
	Today              string
	Text               string
}

// priorityData is the data available to the priority prompt template.
type priorityData struct {
	ContextDescription string
	Title              string
	Description        string
	DueDate            string
}

// loadTemplate parses the template at path, or the embedded fallback when
// path is empty.
func loadTemplate(name, path, fallback string) (*template.Template, error) {
	content := fallback
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				extraction.ErrInvalidConfig, path, err)
		}
		content = string(data)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template %s: %v",
			extraction.ErrInvalidConfig, name, err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
