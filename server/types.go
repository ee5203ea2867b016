package server

import (
	"github.com/honganh1206/datetime/datetime"
)

type ParseRequest struct {
	Input  string `json:"input" jsonschema_description:"Date/time text to parse"`
	Format string `json:"format" jsonschema_description:"strptime-style pattern, e.g. %Y-%m-%d"`
	Out    string `json:"out,omitempty" jsonschema_description:"Optional pattern used to re-render the result"`
}

type ParseResponse struct {
	Datetime  datetime.Datetime `json:"datetime"`
	Text      string            `json:"text"`
	Formatted string            `json:"formatted,omitempty"`
	Cached    bool              `json:"cached"`
}

type GuessRequest struct {
	Input string `json:"input" jsonschema_description:"Date/time text in an unknown format"`
}

type GuessResponse struct {
	Datetime datetime.Datetime `json:"datetime"`
	Text     string            `json:"text"`
	Format   string            `json:"format"`
	Cached   bool              `json:"cached"`
}

type FormatsResponse struct {
	Formats []string `json:"formats"`
}
