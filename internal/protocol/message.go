package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acarlini/wordled/internal/model"
)

// Request codes
const (
	CodeRegister = 10
	CodeLogin    = 20
	CodePlay     = 30
	CodeStats    = 40
	CodeQuit     = 50
	CodeShare    = 60
)

// Response codes
const (
	CodeOK       = 200
	CodeGameOver = 201
	CodeError    = 300
)

// AbandonToken is the literal a player sends mid-game to give up.
const AbandonToken = "exit"

// Separator delimits fields within a frame.
const Separator = ";"

// Request is a parsed tagged request frame.
type Request struct {
	Code int
	Args []string
}

// ParseRequest parses a tagged request frame of the form "code;arg;arg".
// Bare guesses are not requests and never go through this function.
func ParseRequest(frame string) (Request, error) {
	parts := strings.Split(frame, Separator)
	code, err := strconv.Atoi(parts[0])
	if err != nil {
		return Request{}, fmt.Errorf("%w: %q", model.ErrMalformedRequest, frame)
	}
	return Request{Code: code, Args: parts[1:]}, nil
}

// Credentials extracts the username and password arguments from a register
// or login request.
func (r Request) Credentials() (username, password string, err error) {
	if len(r.Args) < 2 {
		return "", "", fmt.Errorf("%w: missing credentials", model.ErrMalformedRequest)
	}
	return r.Args[0], r.Args[1], nil
}

// FormatRequest builds a tagged request frame. Argument-less requests keep
// a trailing separator ("30;") so every request has at least two fields.
func FormatRequest(code int, args ...string) string {
	if len(args) == 0 {
		return strconv.Itoa(code) + Separator
	}
	return strconv.Itoa(code) + Separator + strings.Join(args, Separator)
}

// Response is a parsed response frame.
type Response struct {
	Code    int
	Message string
}

// ParseResponse parses a "code;message" response frame.
func ParseResponse(frame string) (Response, error) {
	code, message, found := strings.Cut(frame, Separator)
	if !found {
		return Response{}, fmt.Errorf("%w: %q", model.ErrMalformedRequest, frame)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %q", model.ErrMalformedRequest, frame)
	}
	return Response{Code: n, Message: message}, nil
}

// FormatResponse builds a "code;message" response frame.
func FormatResponse(code int, message string) string {
	return strconv.Itoa(code) + Separator + message
}
