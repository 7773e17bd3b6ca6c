package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// Describe converts err into its structured form.
func Describe(err error) ErrorDetail {
	var se *skerr.SkibidiError
	if !errors.As(err, &se) {
		return ErrorDetail{
			Code:     "GENERAL_ERROR",
			Message:  err.Error(),
			ExitCode: skerr.ExitGeneral,
		}
	}

	msg := se.Message
	if se.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, se.Cause)
	}
	return ErrorDetail{
		Code:       se.Code,
		Message:    msg,
		Details:    se.Details,
		Suggestion: se.Suggestion,
		ExitCode:   se.ExitCode,
	}
}

// FormatError writes err for the user. Nil writes nothing.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	detail := Describe(err)
	if format == FormatJSON {
		return writeJSON(w, ErrorOutput{Error: detail})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", detail.Message)

	if len(detail.Details) > 0 {
		keys := make([]string, 0, len(detail.Details))
		for k := range detail.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, detail.Details[k])
		}
	}

	if detail.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", detail.Suggestion)
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
