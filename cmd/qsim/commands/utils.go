package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// fail reports an error the way every qsim command does and exits.
func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(data))
}

// writeCSVFile renders a CSV document into a freshly created file.
func writeCSVFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
