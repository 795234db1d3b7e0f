package llm

import (
	"encoding/json"
	"fmt"
)

// buildResponse turns provider output into a Response. Structured requests
// use the first candidate as Content and must validate against the schema;
// a structured answer cut off at MaxTokens is rejected.
func buildResponse(req Request, texts []string, usage Usage, model, stop string) (*Response, error) {
	if len(texts) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s: %w", model, errNoCandidates)}
	}
	resp := &Response{Usage: usage, Model: model, StopReason: stop}

	if req.Schema == nil {
		resp.Texts = texts
		content, err := textResponse(texts)
		if err != nil {
			return nil, err
		}
		resp.Content = content
		return resp, nil
	}

	content := json.RawMessage(texts[0])
	if stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// resolveModel maps a friendly model name to a provider model id; unknown
// names pass through so full ids work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
