package backend

import (
	"context"
	"errors"

	"grainmgr/cli/internal/transport"
)

// Version asks the service root for its welcome message. The root lives
// outside the API prefix, so the request uses an absolute URL.
func (h *HTTP) Version(ctx context.Context) (string, error) {
	if h.root == "" {
		return "", errors.New("service root unknown")
	}
	payload, err := h.t.Send(ctx, transport.Get(h.root))
	if err != nil {
		return "", err
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := payload.Decode(&body); err != nil {
		return "", err
	}
	return body.Message, nil
}
