package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func statusMark(v types.Vocabulary) string {
	if v.Completed {
		return "[x]"
	}
	return "[ ]"
}

// writeList prints one line per entry, or a JSON array in JSON mode.
func (a *app) writeList(w io.Writer, items []types.Vocabulary) error {
	if a.jsonMode {
		return writeJSON(w, items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No vocabulary.")
		return err
	}
	for _, v := range items {
		if _, err := fmt.Fprintf(w, "%s %s  %s\n", statusMark(v), v.ID, v.Title); err != nil {
			return err
		}
	}
	return nil
}

// writeDetail prints every field of v, or a JSON object in JSON mode.
func (a *app) writeDetail(w io.Writer, v types.Vocabulary) error {
	if a.jsonMode {
		return writeJSON(w, v)
	}
	fmt.Fprintf(w, "ID:          %s\n", v.ID)
	fmt.Fprintf(w, "Title:       %s\n", v.Title)
	fmt.Fprintf(w, "Description: %s\n", v.Description)
	if v.Type != "" {
		fmt.Fprintf(w, "Type:        %s\n", v.Type)
	}
	if v.Pronounce != "" {
		fmt.Fprintf(w, "Pronounce:   %s\n", v.Pronounce)
	}
	_, err := fmt.Fprintf(w, "Completed:   %t\n", v.Completed)
	return err
}

// report prints a one-line confirmation, or v as JSON in JSON mode.
func (a *app) report(w io.Writer, verb string, v types.Vocabulary) error {
	if a.jsonMode {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintf(w, "%s %s\n", verb, v.ID)
	return err
}
