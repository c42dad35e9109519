package backend

// HTTP implements API over the REST endpoints.
type HTTP struct {
	t    Sender
	root string
}

// Endpoint paths relative to the API base URL. The trailing slashes match the
// backend's route declarations.
const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)
