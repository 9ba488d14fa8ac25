package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// JSONHandler implements IOHandler over newline-delimited JSON. Every
// event is one line; input lines are a JSON string, an object with a
// "message" field, or plain text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// Output writes ev as one JSON line.
func (h *JSONHandler) Output(ctx context.Context, ev Event) error {
	return h.Encoder.Encode(ev)
}

// Input reads the next non-empty line. Malformed lines are reported as
// error events and skipped.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := h.Reader.ReadString('\n')
		if line == "" && err != nil {
			return "", err
		}

		text := decodeLine(strings.TrimSpace(line))
		clean, serr := SanitizeInput(text)
		if serr == nil {
			return clean, nil
		}
		if serr != ErrEmptyInput {
			if oerr := h.Output(ctx, Event{Type: EventError, Text: serr.Error()}); oerr != nil {
				return "", oerr
			}
		}
		if err != nil {
			return "", err
		}
	}
}

func decodeLine(line string) string {
	var s string
	if err := json.Unmarshal([]byte(line), &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if strings.HasPrefix(line, "{") {
		if err := json.Unmarshal([]byte(line), &obj); err == nil {
			return obj.Message
		}
	}
	return line
}
