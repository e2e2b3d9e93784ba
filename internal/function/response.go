package function

import (
	"encoding/json"
	"net/http"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
)

// CORS holds the cross-origin policy added to every response.
type CORS struct {
	// AllowOrigin is the front-end origin allowed to call the functions.
	AllowOrigin string
}

// Headers returns the full header set for a function response.
func (c CORS) Headers() map[string]string {
	return map[string]string{
		"Content-Type":                     "application/json",
		"Access-Control-Allow-Origin":      c.AllowOrigin,
		"Access-Control-Allow-Headers":     "*",
		"Access-Control-Allow-Methods":     "OPTIONS,POST",
		"Access-Control-Allow-Credentials": "true",
	}
}

func (f *Functions) respond(status int, body any) *message.Response {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(message.ErrorBody{Error: "encoding response: " + err.Error()})
	}
	return &message.Response{
		StatusCode: status,
		Headers:    f.cors.Headers(),
		Body:       data,
	}
}

func (f *Functions) fail(status int, msg string) *message.Response {
	return f.respond(status, message.ErrorBody{Error: msg})
}

func (f *Functions) preflight() *message.Response {
	return f.respond(http.StatusOK, message.StatusBody{Message: "OK"})
}
