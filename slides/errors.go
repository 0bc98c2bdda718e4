package slides

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// APIError is a structured error returned by the remote service.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if len(e.Status) == 0 {
		return fmt.Sprintf("remote service error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("remote service error %d (%s): %s", e.Code, e.Status, e.Message)
}

// RateLimitError indicates the write rate ceiling was hit. The run is never
// retried automatically - the caller is told to wait and run again.
type RateLimitError struct {
	APIError
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("remote service is throttling writes (%s), wait a minute and rerun: %s", e.Status, e.Message)
}

// BatchError identifies the specific mutation a rejected batch failed on.
// Index is the position within the dispatched chunk; Request carries the
// offending payload when the index is resolvable.
type BatchError struct {
	APIError
	Index   int
	Request *Request
}

func (e *BatchError) Error() string {
	kind := "unknown"
	if e.Request != nil {
		kind = e.Request.Kind()
	}
	return fmt.Sprintf("batch rejected at request %d (%s): %s", e.Index, kind, e.Message)
}

// wireError is the error envelope of the remote service.
type wireError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

var requestIndexRe = regexp.MustCompile(`requests\[(\d+)\]`)

// classifyError turns a decoded service error into the taxonomy above. A
// message referencing a batch position yields a BatchError bound to the
// request at that position of reqs (nil reqs for non batch calls).
func classifyError(httpStatus int, we *wireError, reqs []*Request) error {
	base := APIError{Code: we.Error.Code, Status: we.Error.Status, Message: we.Error.Message}
	if base.Code == 0 {
		base.Code = httpStatus
	}
	if httpStatus == 429 || base.Status == "RESOURCE_EXHAUSTED" {
		return &RateLimitError{base}
	}
	if m := requestIndexRe.FindStringSubmatch(base.Message); m != nil && reqs != nil {
		idx, err := strconv.Atoi(m[1])
		if err == nil {
			be := &BatchError{APIError: base, Index: idx}
			if idx >= 0 && idx < len(reqs) {
				be.Request = reqs[idx]
			}
			return be
		}
	}
	return &base
}

// rawError is used when the service answers with something that is not the
// structured envelope.
func rawError(httpStatus int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512] + "..."
	}
	return &APIError{Code: httpStatus, Message: msg}
}
