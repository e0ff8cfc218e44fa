package clients

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("client response error status: %d %s", e.StatusCode, e.StatusText)
}

func (e StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newStatusError(response *http.Response) StatusError {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 1<<20))

	text := strings.TrimSpace(strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode)))
	if text == "" {
		text = http.StatusText(response.StatusCode)
	}

	return StatusError{
		StatusCode: response.StatusCode,
		StatusText: text,
		Body:       string(body),
	}
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
